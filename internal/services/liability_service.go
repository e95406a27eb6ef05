package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
)

// liabilityService handles liability-related business logic.
type liabilityService struct {
	db *gorm.DB
}

// NewLiabilityService creates a new LiabilityServicer.
func NewLiabilityService(db *gorm.DB) LiabilityServicer {
	return &liabilityService{db: db}
}

// CreateLiability creates a new liability for a user
func (s *liabilityService) CreateLiability(userID string, input CreateLiabilityInput) (*models.Liability, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "liability name is required")
	}
	if input.Owner == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "liability owner is required")
	}
	if input.Balance < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "liability balance must not be negative")
	}
	if input.InterestRate < 0 || input.InterestRate > 100 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "interest rate must be between 0 and 100")
	}

	liability := &models.Liability{
		UserID:             userID,
		Name:               input.Name,
		Category:           input.Category,
		Balance:            input.Balance,
		InterestRate:       input.InterestRate,
		DueDate:            input.DueDate,
		Institution:        input.Institution,
		Owner:              input.Owner,
		Notes:              input.Notes,
		CustomFields:       input.CustomFields,
		CustomCategoryName: input.CustomCategoryName,
	}

	if err := s.db.Create(liability).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return liability, nil
}

// GetUserLiabilities retrieves a paginated list of liabilities for a user,
// newest first, optionally filtered by category.
func (s *liabilityService) GetUserLiabilities(userID string, page pagination.PageRequest, category string) (*pagination.PageResponse[models.Liability], error) {
	page.Defaults()

	base := s.db.Model(&models.Liability{}).Where("user_id = ?", userID)
	if category != "" {
		base = base.Where("category = ?", category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var liabilities []models.Liability
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&liabilities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(liabilities, page.Page, page.Limit, totalItems)
	return &result, nil
}

// GetLiabilityByID retrieves a liability by ID for a specific user
func (s *liabilityService) GetLiabilityByID(userID, liabilityID string) (*models.Liability, error) {
	var liability models.Liability
	if err := s.db.Where("id = ? AND user_id = ?", liabilityID, userID).First(&liability).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLiabilityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &liability, nil
}

// UpdateLiability applies a partial update to a liability.
func (s *liabilityService) UpdateLiability(userID, liabilityID string, input UpdateLiabilityInput) (*models.Liability, error) {
	liability, err := s.GetLiabilityByID(userID, liabilityID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "liability name must not be empty")
		}
		liability.Name = *input.Name
	}
	if input.Category != nil {
		liability.Category = *input.Category
	}
	if input.Balance != nil {
		if *input.Balance < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "liability balance must not be negative")
		}
		liability.Balance = *input.Balance
	}
	if input.InterestRate != nil {
		if *input.InterestRate < 0 || *input.InterestRate > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "interest rate must be between 0 and 100")
		}
		liability.InterestRate = *input.InterestRate
	}
	if input.DueDate != nil {
		liability.DueDate = *input.DueDate
	}
	if input.Institution != nil {
		liability.Institution = *input.Institution
	}
	if input.Owner != nil {
		if *input.Owner == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "liability owner must not be empty")
		}
		liability.Owner = *input.Owner
	}
	if input.Notes != nil {
		liability.Notes = *input.Notes
	}
	if input.CustomFields != nil {
		liability.CustomFields = *input.CustomFields
	}
	if input.CustomCategoryName != nil {
		liability.CustomCategoryName = *input.CustomCategoryName
	}

	if err := s.db.Save(liability).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return liability, nil
}

// DeleteLiability deletes a liability owned by the user
func (s *liabilityService) DeleteLiability(userID, liabilityID string) error {
	liability, err := s.GetLiabilityByID(userID, liabilityID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(liability).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetLiabilitySummary returns the total outstanding balance and a
// per-category breakdown.
func (s *liabilityService) GetLiabilitySummary(userID string) (*RecordSummary, error) {
	var rows []CategoryBreakdown
	if err := s.db.Model(&models.Liability{}).
		Select("category, COALESCE(SUM(balance), 0) AS total, COUNT(*) AS count").
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
