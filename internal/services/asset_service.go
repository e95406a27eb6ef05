package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates a new asset for a user
func (s *assetService) CreateAsset(userID string, input CreateAssetInput) (*models.Asset, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}
	if input.Owner == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset owner is required")
	}
	if input.Value < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset value must not be negative")
	}

	asset := &models.Asset{
		UserID:             userID,
		Name:               input.Name,
		Category:           input.Category,
		Value:              input.Value,
		PurchaseDate:       input.PurchaseDate,
		Location:           input.Location,
		Description:        input.Description,
		Owner:              input.Owner,
		Documents:          input.Documents,
		DocumentURL:        input.DocumentURL,
		CustomFields:       input.CustomFields,
		CustomCategoryName: input.CustomCategoryName,
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// GetUserAssets retrieves a paginated list of assets for a user, newest
// first, optionally filtered by category.
func (s *assetService) GetUserAssets(userID string, page pagination.PageRequest, category string) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	base := s.db.Model(&models.Asset{}).Where("user_id = ?", userID)
	if category != "" {
		base = base.Where("category = ?", category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.Limit, totalItems)
	return &result, nil
}

// GetAssetByID retrieves an asset by ID for a specific user
func (s *assetService) GetAssetByID(userID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// UpdateAsset applies a partial update to an asset. Only fields present in
// the input are replaced; custom fields replace the whole list when supplied.
func (s *assetService) UpdateAsset(userID, assetID string, input UpdateAssetInput) (*models.Asset, error) {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name must not be empty")
		}
		asset.Name = *input.Name
	}
	if input.Category != nil {
		asset.Category = *input.Category
	}
	if input.Value != nil {
		if *input.Value < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset value must not be negative")
		}
		asset.Value = *input.Value
	}
	if input.PurchaseDate != nil {
		asset.PurchaseDate = *input.PurchaseDate
	}
	if input.Location != nil {
		asset.Location = *input.Location
	}
	if input.Description != nil {
		asset.Description = *input.Description
	}
	if input.Owner != nil {
		if *input.Owner == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset owner must not be empty")
		}
		asset.Owner = *input.Owner
	}
	if input.Documents != nil {
		asset.Documents = *input.Documents
	}
	if input.DocumentURL != nil {
		asset.DocumentURL = *input.DocumentURL
	}
	if input.CustomFields != nil {
		asset.CustomFields = *input.CustomFields
	}
	if input.CustomCategoryName != nil {
		asset.CustomCategoryName = *input.CustomCategoryName
	}

	if err := s.db.Save(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// DeleteAsset deletes an asset owned by the user
func (s *assetService) DeleteAsset(userID, assetID string) error {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(asset).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetAssetSummary returns the total asset value and a per-category breakdown.
func (s *assetService) GetAssetSummary(userID string) (*RecordSummary, error) {
	var rows []CategoryBreakdown
	if err := s.db.Model(&models.Asset{}).
		Select("category, COALESCE(SUM(value), 0) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &RecordSummary{ByCategory: rows}
	if summary.ByCategory == nil {
		summary.ByCategory = []CategoryBreakdown{}
	}
	for _, row := range rows {
		summary.Total += row.Total
	}
	return summary, nil
}
