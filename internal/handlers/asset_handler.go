package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, auditService: auditService}
}

// CreateAssetRequest represents the request payload for creating an asset
type CreateAssetRequest struct {
	Name               string               `json:"name" binding:"required,min=1,max=100"`
	Category           models.AssetCategory `json:"category" binding:"required,asset_category"`
	Value              int64                `json:"value" binding:"gte=0"`
	PurchaseDate       string               `json:"purchase_date" binding:"max=30"`
	Location           string               `json:"location" binding:"max=200"`
	Description        string               `json:"description" binding:"max=500"`
	Owner              string               `json:"owner" binding:"required,min=1,max=100"`
	Documents          []string             `json:"documents"`
	DocumentURL        string               `json:"document_url" binding:"omitempty,url"`
	CustomFields       []CustomFieldRequest `json:"custom_fields" binding:"omitempty,dive"`
	CustomCategoryName string               `json:"custom_category_name" binding:"max=100"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
type UpdateAssetRequest struct {
	Name               *string               `json:"name" binding:"omitempty,min=1,max=100"`
	Category           *models.AssetCategory `json:"category" binding:"omitempty,asset_category"`
	Value              *int64                `json:"value" binding:"omitempty,gte=0"`
	PurchaseDate       *string               `json:"purchase_date" binding:"omitempty,max=30"`
	Location           *string               `json:"location" binding:"omitempty,max=200"`
	Description        *string               `json:"description" binding:"omitempty,max=500"`
	Owner              *string               `json:"owner" binding:"omitempty,min=1,max=100"`
	Documents          *[]string             `json:"documents"`
	DocumentURL        *string               `json:"document_url" binding:"omitempty,url"`
	CustomFields       *[]CustomFieldRequest `json:"custom_fields" binding:"omitempty,dive"`
	CustomCategoryName *string               `json:"custom_category_name" binding:"omitempty,max=100"`
}

// CreateAsset handles the creation of a new asset
// @Summary     Create an asset
// @Description Create a new asset for the authenticated user
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} SuccessResponse{data=models.Asset} "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(userID, services.CreateAssetInput{
		Name:               req.Name,
		Category:           req.Category,
		Value:              req.Value,
		PurchaseDate:       req.PurchaseDate,
		Location:           req.Location,
		Description:        req.Description,
		Owner:              req.Owner,
		Documents:          req.Documents,
		DocumentURL:        req.DocumentURL,
		CustomFields:       fieldsFromRequest(req.CustomFields),
		CustomCategoryName: req.CustomCategoryName,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ASSET", "asset", asset.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "category": req.Category})

	respondSuccess(c, http.StatusCreated, "Asset created successfully", asset)
}

// GetUserAssets handles the retrieval of assets for a user
// @Summary     Get user assets
// @Description Get a paginated list of assets for the authenticated user
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int    false "Page number (default 1)"
// @Param       limit    query int    false "Items per page (default 50, max 100)"
// @Param       category query string false "Filter by category"
// @Success     200 {object} SuccessResponse{data=pagination.PageResponse[models.Asset]} "Paginated assets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) GetUserAssets(c *gin.Context) {
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

	result, err := h.assetService.GetUserAssets(userID, page, c.Query("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Assets retrieved", result)
}

// GetAssetByID handles the retrieval of a specific asset for a user
// @Summary     Get asset by ID
// @Description Get a specific asset by ID for the authenticated user
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} SuccessResponse{data=models.Asset} "Asset details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAssetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Asset retrieved", asset)
}

// UpdateAsset handles updating an asset.
// @Summary     Update asset
// @Description Update an existing asset for the authenticated user
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Asset ID"
// @Param       request body UpdateAssetRequest true "Updated asset details"
// @Success     200 {object} SuccessResponse{data=models.Asset} "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateAssetInput{
		Name:               req.Name,
		Category:           req.Category,
		Value:              req.Value,
		PurchaseDate:       req.PurchaseDate,
		Location:           req.Location,
		Description:        req.Description,
		Owner:              req.Owner,
		Documents:          req.Documents,
		DocumentURL:        req.DocumentURL,
		CustomCategoryName: req.CustomCategoryName,
	}
	if req.CustomFields != nil {
		fields := fieldsFromRequest(*req.CustomFields)
		input.CustomFields = &fields
	}

	asset, err := h.assetService.UpdateAsset(userID, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ASSET", "asset", asset.ID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Asset updated successfully", asset)
}

// DeleteAsset handles deleting an asset.
// @Summary     Delete asset
// @Description Delete an asset for the authenticated user. Transactions that referenced it are kept.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} SuccessResponse "Asset deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID := c.Param("id")
	if err := h.assetService.DeleteAsset(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ASSET", "asset", assetID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Asset deleted successfully", nil)
}

// GetAssetSummary handles the asset summary aggregation.
// @Summary     Get asset summary
// @Description Get the total asset value and a per-category breakdown for the authenticated user
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SuccessResponse{data=services.RecordSummary} "Asset summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/summary [get]
func (h *AssetHandler) GetAssetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.assetService.GetAssetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Asset summary retrieved", summary)
}
