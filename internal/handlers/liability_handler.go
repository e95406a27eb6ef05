package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/services"
)

// LiabilityHandler handles liability-related requests.
type LiabilityHandler struct {
	liabilityService services.LiabilityServicer
	auditService     services.AuditServicer
}

// NewLiabilityHandler creates a new LiabilityHandler.
func NewLiabilityHandler(liabilityService services.LiabilityServicer, auditService services.AuditServicer) *LiabilityHandler {
	return &LiabilityHandler{liabilityService: liabilityService, auditService: auditService}
}

// CreateLiabilityRequest represents the request payload for creating a liability
type CreateLiabilityRequest struct {
	Name               string                   `json:"name" binding:"required,min=1,max=100"`
	Category           models.LiabilityCategory `json:"category" binding:"required,liability_category"`
	Balance            int64                    `json:"balance" binding:"gte=0"`
	InterestRate       float64                  `json:"interest_rate" binding:"gte=0,lte=100"`
	DueDate            string                   `json:"due_date" binding:"max=30"`
	Institution        string                   `json:"institution" binding:"max=200"`
	Owner              string                   `json:"owner" binding:"required,min=1,max=100"`
	Notes              string                   `json:"notes" binding:"max=500"`
	CustomFields       []CustomFieldRequest     `json:"custom_fields" binding:"omitempty,dive"`
	CustomCategoryName string                   `json:"custom_category_name" binding:"max=100"`
}

// UpdateLiabilityRequest represents the request payload for updating a liability.
type UpdateLiabilityRequest struct {
	Name               *string                   `json:"name" binding:"omitempty,min=1,max=100"`
	Category           *models.LiabilityCategory `json:"category" binding:"omitempty,liability_category"`
	Balance            *int64                    `json:"balance" binding:"omitempty,gte=0"`
	InterestRate       *float64                  `json:"interest_rate" binding:"omitempty,gte=0,lte=100"`
	DueDate            *string                   `json:"due_date" binding:"omitempty,max=30"`
	Institution        *string                   `json:"institution" binding:"omitempty,max=200"`
	Owner              *string                   `json:"owner" binding:"omitempty,min=1,max=100"`
	Notes              *string                   `json:"notes" binding:"omitempty,max=500"`
	CustomFields       *[]CustomFieldRequest     `json:"custom_fields" binding:"omitempty,dive"`
	CustomCategoryName *string                   `json:"custom_category_name" binding:"omitempty,max=100"`
}

// NetWorthResponse aggregates total assets against total liabilities.
type NetWorthResponse struct {
	TotalAssets      int64 `json:"total_assets"`
	TotalLiabilities int64 `json:"total_liabilities"`
	NetWorth         int64 `json:"net_worth"`
}

// CreateLiability handles the creation of a new liability
// @Summary     Create a liability
// @Description Create a new liability for the authenticated user
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLiabilityRequest true "Liability details"
// @Success     201 {object} SuccessResponse{data=models.Liability} "Liability created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities [post]
func (h *LiabilityHandler) CreateLiability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	liability, err := h.liabilityService.CreateLiability(userID, services.CreateLiabilityInput{
		Name:               req.Name,
		Category:           req.Category,
		Balance:            req.Balance,
		InterestRate:       req.InterestRate,
		DueDate:            req.DueDate,
		Institution:        req.Institution,
		Owner:              req.Owner,
		Notes:              req.Notes,
		CustomFields:       fieldsFromRequest(req.CustomFields),
		CustomCategoryName: req.CustomCategoryName,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_LIABILITY", "liability", liability.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "category": req.Category})

	respondSuccess(c, http.StatusCreated, "Liability created successfully", liability)
}

// GetUserLiabilities handles the retrieval of liabilities for a user
// @Summary     Get user liabilities
// @Description Get a paginated list of liabilities for the authenticated user
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int    false "Page number (default 1)"
// @Param       limit    query int    false "Items per page (default 50, max 100)"
// @Param       category query string false "Filter by category"
// @Success     200 {object} SuccessResponse{data=pagination.PageResponse[models.Liability]} "Paginated liabilities"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities [get]
func (h *LiabilityHandler) GetUserLiabilities(c *gin.Context) {
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

	result, err := h.liabilityService.GetUserLiabilities(userID, page, c.Query("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Liabilities retrieved", result)
}

// GetLiabilityByID handles the retrieval of a specific liability for a user
// @Summary     Get liability by ID
// @Description Get a specific liability by ID for the authenticated user
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Liability ID"
// @Success     200 {object} SuccessResponse{data=models.Liability} "Liability details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Liability not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities/{id} [get]
func (h *LiabilityHandler) GetLiabilityByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	liability, err := h.liabilityService.GetLiabilityByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Liability retrieved", liability)
}

// UpdateLiability handles updating a liability.
// @Summary     Update liability
// @Description Update an existing liability for the authenticated user
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                 true "Liability ID"
// @Param       request body UpdateLiabilityRequest true "Updated liability details"
// @Success     200 {object} SuccessResponse{data=models.Liability} "Updated liability"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Liability not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities/{id} [put]
func (h *LiabilityHandler) UpdateLiability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateLiabilityInput{
		Name:               req.Name,
		Category:           req.Category,
		Balance:            req.Balance,
		InterestRate:       req.InterestRate,
		DueDate:            req.DueDate,
		Institution:        req.Institution,
		Owner:              req.Owner,
		Notes:              req.Notes,
		CustomCategoryName: req.CustomCategoryName,
	}
	if req.CustomFields != nil {
		fields := fieldsFromRequest(*req.CustomFields)
		input.CustomFields = &fields
	}

	liability, err := h.liabilityService.UpdateLiability(userID, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_LIABILITY", "liability", liability.ID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Liability updated successfully", liability)
}

// DeleteLiability handles deleting a liability.
// @Summary     Delete liability
// @Description Delete a liability for the authenticated user. Transactions that referenced it are kept.
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Liability ID"
// @Success     200 {object} SuccessResponse "Liability deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Liability not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities/{id} [delete]
func (h *LiabilityHandler) DeleteLiability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	liabilityID := c.Param("id")
	if err := h.liabilityService.DeleteLiability(userID, liabilityID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_LIABILITY", "liability", liabilityID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Liability deleted successfully", nil)
}

// GetLiabilitySummary handles the liability summary aggregation.
// @Summary     Get liability summary
// @Description Get the total outstanding balance and a per-category breakdown for the authenticated user
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SuccessResponse{data=services.RecordSummary} "Liability summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /liabilities/summary [get]
func (h *LiabilityHandler) GetLiabilitySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.liabilityService.GetLiabilitySummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Liability summary retrieved", summary)
}
