package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeEMIPayment TransactionType = "emi_payment"
	TransactionTypePayment    TransactionType = "payment"
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeInterest   TransactionType = "interest"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// Transaction records one balance-affecting event against exactly one asset
// or liability. Amount is in minor currency units and stays positive for
// every type except adjustment, which may carry a signed delta.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AssetID     *string         `gorm:"type:uuid;index" json:"asset_id,omitempty"`
	LiabilityID *string         `gorm:"type:uuid;index" json:"liability_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      int64           `gorm:"not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `json:"description,omitempty"`
	Notes       string          `gorm:"size:500" json:"notes,omitempty"`
}
