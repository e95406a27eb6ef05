package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/logger"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
)

// transactionService records transactions and keeps the target asset or
// liability balance consistent with the applied history. The balance is
// mutated incrementally; the transaction rows are the source of truth for
// the delta history.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// balanceDelta returns the signed effect of a transaction on its target
// balance. Combinations outside the effect table are a defined no-op.
func balanceDelta(t *models.Transaction) int64 {
	switch {
	case t.AssetID != nil:
		switch t.Type {
		case models.TransactionTypeDeposit, models.TransactionTypeInterest:
			return t.Amount
		case models.TransactionTypeWithdrawal, models.TransactionTypePayment:
			return -t.Amount
		}
	case t.LiabilityID != nil:
		switch t.Type {
		case models.TransactionTypeEMIPayment, models.TransactionTypePayment:
			return -t.Amount
		case models.TransactionTypeAdjustment:
			// Adjustment amounts may themselves be signed.
			return t.Amount
		}
	}
	return 0
}

// applyEffect adjusts the target balance by the transaction's delta in a
// single UPDATE, clamped at zero so concurrent writers cannot lose updates
// or drive a balance negative. A missing target is skipped: the transaction
// row still stands, only the balance adjustment is dropped.
func (s *transactionService) applyEffect(tx *gorm.DB, txn *models.Transaction, reverse bool) error {
	delta := balanceDelta(txn)
	if reverse {
		delta = -delta
	}
	if delta == 0 {
		return nil
	}

	var res *gorm.DB
	switch {
	case txn.AssetID != nil:
		res = tx.Model(&models.Asset{}).
			Where("id = ? AND user_id = ?", *txn.AssetID, txn.UserID).
			Update("value", gorm.Expr("CASE WHEN value + ? < 0 THEN 0 ELSE value + ? END", delta, delta))
	case txn.LiabilityID != nil:
		res = tx.Model(&models.Liability{}).
			Where("id = ? AND user_id = ?", *txn.LiabilityID, txn.UserID).
			Update("balance", gorm.Expr("CASE WHEN balance + ? < 0 THEN 0 ELSE balance + ? END", delta, delta))
	}

	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		logger.Get().Warnw("transaction target missing, balance not adjusted",
			"transaction_id", txn.ID,
			"user_id", txn.UserID,
		)
	}
	return nil
}

// validateTarget checks that exactly one of asset and liability is set.
func validateTarget(assetID, liabilityID *string) error {
	if (assetID == nil) == (liabilityID == nil) {
		return apperrors.ErrInvalidTransactionTarget
	}
	return nil
}

// validateAmount checks the amount against the transaction type. Every type
// except adjustment requires a positive amount.
func validateAmount(transactionType models.TransactionType, amount int64) error {
	if transactionType == models.TransactionTypeAdjustment {
		if amount == 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "adjustment amount must not be zero")
		}
		return nil
	}
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	return nil
}

// CreateTransaction persists a new transaction and applies its effect to the
// target balance.
func (s *transactionService) CreateTransaction(userID string, input CreateTransactionInput) (*models.Transaction, error) {
	if err := validateTarget(input.AssetID, input.LiabilityID); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Type, input.Amount); err != nil {
		return nil, err
	}

	// Verify the target exists and belongs to the user before recording.
	if input.AssetID != nil {
		var count int64
		if err := s.db.Model(&models.Asset{}).Where("id = ? AND user_id = ?", *input.AssetID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrAssetNotFound
		}
	} else {
		var count int64
		if err := s.db.Model(&models.Liability{}).Where("id = ? AND user_id = ?", *input.LiabilityID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrLiabilityNotFound
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AssetID:     input.AssetID,
		LiabilityID: input.LiabilityID,
		Type:        input.Type,
		Amount:      input.Amount,
		Date:        date,
		Description: input.Description,
		Notes:       input.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.applyEffect(tx, transaction, false)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, most recent date first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.Limit, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.AssetID != nil {
		q = q.Where("asset_id = ?", *f.AssetID)
	}
	if f.LiabilityID != nil {
		q = q.Where("liability_id = ?", *f.LiabilityID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction reverses the stored transaction's effect, merges the
// changes, and applies the new effect, all within one database transaction.
// The target record cannot change after creation.
func (s *transactionService) UpdateTransaction(userID, transactionID string, input UpdateTransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	effectiveType := transaction.Type
	if input.Type != nil {
		effectiveType = *input.Type
	}
	effectiveAmount := transaction.Amount
	if input.Amount != nil {
		effectiveAmount = *input.Amount
	}
	if err := validateAmount(effectiveType, effectiveAmount); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applyEffect(tx, transaction, true); err != nil {
			return err
		}

		transaction.Type = effectiveType
		transaction.Amount = effectiveAmount
		if input.Date != nil {
			transaction.Date = *input.Date
		}
		if input.Description != nil {
			transaction.Description = *input.Description
		}
		if input.Notes != nil {
			transaction.Notes = *input.Notes
		}

		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return s.applyEffect(tx, transaction, false)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// DeleteTransaction reverses the transaction's effect and removes the row.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applyEffect(tx, transaction, true); err != nil {
			return err
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
