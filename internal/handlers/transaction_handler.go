package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Exactly one of asset_id and liability_id must be set.
type CreateTransactionRequest struct {
	AssetID     *string                `json:"asset_id" binding:"omitempty,uuid"`
	LiabilityID *string                `json:"liability_id" binding:"omitempty,uuid"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      int64                  `json:"amount" binding:"required"`
	Date        *string                `json:"date"`
	Description string                 `json:"description" binding:"max=500"`
	Notes       string                 `json:"notes" binding:"max=500"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. The target record cannot change after creation.
type UpdateTransactionRequest struct {
	Type        *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Amount      *int64                  `json:"amount"`
	Date        *string                 `json:"date"`
	Description *string                 `json:"description" binding:"omitempty,max=500"`
	Notes       *string                 `json:"notes" binding:"omitempty,max=500"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a transaction against an asset or liability and apply its effect to the target balance
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} SuccessResponse{data=models.Transaction} "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or target"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateTransactionInput{
		AssetID:     req.AssetID,
		LiabilityID: req.LiabilityID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		input.Date = date
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount})

	respondSuccess(c, http.StatusCreated, "Transaction created successfully", transaction)
}

// GetUserTransactions handles the retrieval of transactions for a user
// @Summary     Get user transactions
// @Description Get a paginated list of transactions for the authenticated user, most recent first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page         query int    false "Page number (default 1)"
// @Param       limit        query int    false "Items per page (default 50, max 100)"
// @Param       asset_id     query string false "Filter by asset"
// @Param       liability_id query string false "Filter by liability"
// @Param       type         query string false "Filter by transaction type"
// @Param       from         query string false "Filter from date (inclusive)"
// @Param       to           query string false "Filter to date (inclusive)"
// @Success     200 {object} SuccessResponse{data=pagination.PageResponse[models.Transaction]} "Paginated transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := transactionFilterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Transactions retrieved", result)
}

func transactionFilterFromQuery(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	if v := c.Query("asset_id"); v != "" {
		filter.AssetID = &v
	}
	if v := c.Query("liability_id"); v != "" {
		filter.LiabilityID = &v
	}
	if v := c.Query("type"); v != "" {
		transactionType := models.TransactionType(v)
		filter.Type = &transactionType
	}
	if v := c.Query("from"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		// Inclusive upper bound for date-only input.
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.ToDate = &to
	}
	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID for the authenticated user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} SuccessResponse{data=models.Transaction} "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Transaction retrieved", transaction)
}

// UpdateTransaction handles updating a transaction.
// @Summary     Update transaction
// @Description Update a transaction. The old effect is reversed and the new effect applied to the target balance.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Updated transaction details"
// @Success     200 {object} SuccessResponse{data=models.Transaction} "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateTransactionInput{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		input.Date = &date
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Transaction updated successfully", transaction)
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete transaction
// @Description Delete a transaction. Its effect is reversed on the target balance.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} SuccessResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID := c.Param("id")
	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Transaction deleted successfully", nil)
}
