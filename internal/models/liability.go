package models

// LiabilityCategory represents the category of a liability
type LiabilityCategory string

const (
	LiabilityCategoryCredit   LiabilityCategory = "credit"
	LiabilityCategoryLoan     LiabilityCategory = "loan"
	LiabilityCategoryMortgage LiabilityCategory = "mortgage"
	LiabilityCategoryTax      LiabilityCategory = "tax"
	LiabilityCategoryOther    LiabilityCategory = "other"
	LiabilityCategoryCustom   LiabilityCategory = "custom"
)

// Liability represents something a user owes. Balance is in minor currency
// units, is clamped at zero, and is adjusted through the transaction service.
type Liability struct {
	Base
	UserID       string            `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string            `gorm:"not null;size:100" json:"name"`
	Category     LiabilityCategory `gorm:"not null" json:"category"`
	Balance      int64             `gorm:"not null" json:"balance"`
	InterestRate float64           `json:"interest_rate,omitempty"`
	DueDate      string            `json:"due_date,omitempty"`
	Institution  string            `gorm:"size:100" json:"institution,omitempty"`
	Owner        string            `gorm:"not null" json:"owner"`
	Notes        string            `gorm:"size:500" json:"notes,omitempty"`

	CustomFields       CustomFieldList `gorm:"serializer:json" json:"custom_fields,omitempty"`
	CustomCategoryName string          `json:"custom_category_name,omitempty"`
}
