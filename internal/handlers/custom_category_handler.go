package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/services"
)

// CustomCategoryHandler handles custom category template requests.
type CustomCategoryHandler struct {
	templateService services.CustomCategoryServicer
	auditService    services.AuditServicer
}

// NewCustomCategoryHandler creates a new CustomCategoryHandler.
func NewCustomCategoryHandler(templateService services.CustomCategoryServicer, auditService services.AuditServicer) *CustomCategoryHandler {
	return &CustomCategoryHandler{templateService: templateService, auditService: auditService}
}

// CreateTemplateRequest represents the request payload for creating a template
type CreateTemplateRequest struct {
	Name         string                      `json:"name" binding:"required,min=1,max=100"`
	CategoryType models.CategoryTemplateType `json:"category_type" binding:"required,category_template_type"`
	Description  string                      `json:"description" binding:"max=500"`
	Icon         string                      `json:"icon" binding:"max=50"`
	Fields       []CustomFieldRequest        `json:"fields" binding:"required,min=1,dive"`
}

// UpdateTemplateRequest represents the request payload for updating a template.
type UpdateTemplateRequest struct {
	Name         *string                      `json:"name" binding:"omitempty,min=1,max=100"`
	CategoryType *models.CategoryTemplateType `json:"category_type" binding:"omitempty,category_template_type"`
	Description  *string                      `json:"description" binding:"omitempty,max=500"`
	Icon         *string                      `json:"icon" binding:"omitempty,max=50"`
	Fields       *[]CustomFieldRequest        `json:"fields" binding:"omitempty,dive"`
}

// ListTemplates handles the retrieval of the user's templates
// @Summary     List custom category templates
// @Description Get the authenticated user's custom category templates, optionally filtered by category type
// @Tags        custom-categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Filter by category type (asset or liability)"
// @Success     200 {object} SuccessResponse{data=[]models.CustomCategoryTemplate} "Templates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-categories [get]
func (h *CustomCategoryHandler) ListTemplates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryType := c.Query("type")
	if categoryType != "" && categoryType != string(models.CategoryTemplateTypeAsset) && categoryType != string(models.CategoryTemplateTypeLiability) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be asset or liability"))
		return
	}

	templates, err := h.templateService.ListTemplates(userID, categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Templates retrieved", templates)
}

// GetTemplateByID handles the retrieval of a specific template
// @Summary     Get template by ID
// @Description Get a specific custom category template by ID for the authenticated user
// @Tags        custom-categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} SuccessResponse{data=models.CustomCategoryTemplate} "Template details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-categories/{id} [get]
func (h *CustomCategoryHandler) GetTemplateByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.templateService.GetTemplateByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Template retrieved", template)
}

// CreateTemplate handles the creation of a new template
// @Summary     Create a custom category template
// @Description Create a new custom category template. Names are unique per user and category type, case-insensitively.
// @Tags        custom-categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTemplateRequest true "Template details"
// @Success     201 {object} SuccessResponse{data=models.CustomCategoryTemplate} "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Template name already in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-categories [post]
func (h *CustomCategoryHandler) CreateTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	template, err := h.templateService.CreateTemplate(userID, services.CreateTemplateInput{
		Name:         req.Name,
		CategoryType: req.CategoryType,
		Description:  req.Description,
		Icon:         req.Icon,
		Fields:       fieldsFromRequest(req.Fields),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TEMPLATE", "custom_category", template.ID, c.ClientIP(),
		map[string]interface{}{"name": template.Name, "category_type": template.CategoryType})

	respondSuccess(c, http.StatusCreated, "Template created successfully", template)
}

// UpdateTemplate handles updating a template.
// @Summary     Update template
// @Description Update an existing custom category template. Records that already copied its fields are untouched.
// @Tags        custom-categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Template ID"
// @Param       request body UpdateTemplateRequest true "Updated template details"
// @Success     200 {object} SuccessResponse{data=models.CustomCategoryTemplate} "Updated template"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     409 {object} ErrorResponse "Template name already in use or fields empty"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-categories/{id} [put]
func (h *CustomCategoryHandler) UpdateTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateTemplateInput{
		Name:         req.Name,
		CategoryType: req.CategoryType,
		Description:  req.Description,
		Icon:         req.Icon,
	}
	if req.Fields != nil {
		fields := fieldsFromRequest(*req.Fields)
		input.Fields = &fields
	}

	template, err := h.templateService.UpdateTemplate(userID, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TEMPLATE", "custom_category", template.ID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Template updated successfully", template)
}

// DeleteTemplate handles deleting a template.
// @Summary     Delete template
// @Description Delete a custom category template. Records that copied its fields are untouched.
// @Tags        custom-categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} SuccessResponse "Template deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-categories/{id} [delete]
func (h *CustomCategoryHandler) DeleteTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	templateID := c.Param("id")
	if err := h.templateService.DeleteTemplate(userID, templateID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TEMPLATE", "custom_category", templateID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Template deleted successfully", nil)
}

// HydrateFields returns a fresh copy of the template's fields for a new record.
// @Summary     Hydrate template fields
// @Description Get an independent copy of the template's field definitions, with fresh field IDs and null values, for attaching to a new asset or liability
// @Tags        custom-categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} SuccessResponse{data=models.CustomFieldList} "Hydrated fields"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-categories/{id}/fields [get]
func (h *CustomCategoryHandler) HydrateFields(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields, err := h.templateService.HydrateFields(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Fields hydrated", fields)
}
