package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/uuid"
)

// customCategoryService owns user-defined category templates: named sets of
// custom field definitions for assets and liabilities.
type customCategoryService struct {
	db *gorm.DB
}

// NewCustomCategoryService creates a new CustomCategoryServicer.
func NewCustomCategoryService(db *gorm.DB) CustomCategoryServicer {
	return &customCategoryService{db: db}
}

// sanitizeFields normalizes a field list: blank ids are replaced with fresh
// ones and any values are dropped (templates hold definitions, not data).
// When mintIDs is true every id is regenerated regardless of input.
func sanitizeFields(fields models.CustomFieldList, mintIDs bool) models.CustomFieldList {
	out := make(models.CustomFieldList, 0, len(fields))
	for _, f := range fields {
		if mintIDs || f.ID == "" {
			f.ID = uuid.New()
		}
		f.Value = models.NullValue()
		out = append(out, f)
	}
	return out
}

// ListTemplates retrieves a user's templates, newest first, optionally
// filtered by category type.
func (s *customCategoryService) ListTemplates(userID string, categoryType string) ([]models.CustomCategoryTemplate, error) {
	query := s.db.Where("user_id = ?", userID)
	if categoryType != "" {
		query = query.Where("category_type = ?", categoryType)
	}

	var templates []models.CustomCategoryTemplate
	if err := query.Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if templates == nil {
		templates = []models.CustomCategoryTemplate{}
	}
	return templates, nil
}

// GetTemplateByID retrieves a template by ID for a specific user
func (s *customCategoryService) GetTemplateByID(userID, templateID string) (*models.CustomCategoryTemplate, error) {
	var template models.CustomCategoryTemplate
	if err := s.db.Where("id = ? AND user_id = ?", templateID, userID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &template, nil
}

// CreateTemplate creates a new template. The name must be unique per user and
// category type under case-insensitive comparison, and the field list must
// not be empty. Field ids are always regenerated so that every template holds
// internally unique ids.
func (s *customCategoryService) CreateTemplate(userID string, input CreateTemplateInput) (*models.CustomCategoryTemplate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "template name is required")
	}
	if len(input.Fields) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one custom field is required")
	}

	taken, err := s.nameTaken(userID, input.CategoryType, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.WithMessage(apperrors.ErrTemplateNameTaken,
			"A custom "+string(input.CategoryType)+" category named \""+name+"\" already exists")
	}

	template := &models.CustomCategoryTemplate{
		UserID:       userID,
		Name:         name,
		CategoryType: input.CategoryType,
		Description:  input.Description,
		Icon:         input.Icon,
		Fields:       sanitizeFields(input.Fields, true),
	}

	if err := s.db.Create(template).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return template, nil
}

// UpdateTemplate applies a partial update. A renamed template is re-checked
// for uniqueness against the effective category type (the new one if
// supplied, the stored one otherwise), excluding the template itself. A
// supplied field list replaces the stored sequence and must stay non-empty.
func (s *customCategoryService) UpdateTemplate(userID, templateID string, input UpdateTemplateInput) (*models.CustomCategoryTemplate, error) {
	template, err := s.GetTemplateByID(userID, templateID)
	if err != nil {
		return nil, err
	}

	effectiveType := template.CategoryType
	if input.CategoryType != nil {
		effectiveType = *input.CategoryType
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "template name must not be empty")
		}
		if !strings.EqualFold(name, template.Name) {
			taken, err := s.nameTaken(userID, effectiveType, name, template.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.WithMessage(apperrors.ErrTemplateNameTaken,
					"A custom "+string(effectiveType)+" category named \""+name+"\" already exists")
			}
		}
		template.Name = name
	}
	if input.CategoryType != nil {
		template.CategoryType = *input.CategoryType
	}
	if input.Description != nil {
		template.Description = *input.Description
	}
	if input.Icon != nil {
		template.Icon = *input.Icon
	}
	if input.Fields != nil {
		sanitized := sanitizeFields(*input.Fields, false)
		if len(sanitized) == 0 {
			return nil, apperrors.ErrTemplateFieldsRequired
		}
		template.Fields = sanitized
	}

	if err := s.db.Save(template).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return template, nil
}

// DeleteTemplate deletes a template owned by the user. Records that copied
// the template's fields are untouched.
func (s *customCategoryService) DeleteTemplate(userID, templateID string) error {
	template, err := s.GetTemplateByID(userID, templateID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(template).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// HydrateFields returns an independent copy of the template's fields for
// attaching to a new record: every field gets a fresh id and a null value.
func (s *customCategoryService) HydrateFields(userID, templateID string) (models.CustomFieldList, error) {
	template, err := s.GetTemplateByID(userID, templateID)
	if err != nil {
		return nil, err
	}

	return sanitizeFields(template.Fields, true), nil
}

// nameTaken reports whether another template of the same user and category
// type already uses the name, compared case-insensitively. excludeID skips
// the template being renamed.
func (s *customCategoryService) nameTaken(userID string, categoryType models.CategoryTemplateType, name, excludeID string) (bool, error) {
	query := s.db.Model(&models.CustomCategoryTemplate{}).
		Where("user_id = ? AND category_type = ? AND LOWER(name) = LOWER(?)", userID, categoryType, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
