package models

// AssetCategory represents the category of an asset
type AssetCategory string

const (
	AssetCategoryCash       AssetCategory = "cash"
	AssetCategoryBank       AssetCategory = "bank"
	AssetCategoryInvestment AssetCategory = "investment"
	AssetCategoryProperty   AssetCategory = "property"
	AssetCategoryVehicle    AssetCategory = "vehicle"
	AssetCategoryJewelry    AssetCategory = "jewelry"
	AssetCategoryOther      AssetCategory = "other"
	AssetCategoryCustom     AssetCategory = "custom"
)

// Asset represents something a user owns. Value is in minor currency units
// and never goes below zero; transactions adjust it through the transaction
// service, not directly.
type Asset struct {
	Base
	UserID       string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string        `gorm:"not null;size:100" json:"name"`
	Category     AssetCategory `gorm:"not null" json:"category"`
	Value        int64         `gorm:"not null" json:"value"`
	PurchaseDate string        `json:"purchase_date,omitempty"`
	Location     string        `json:"location,omitempty"`
	Description  string        `gorm:"size:500" json:"description,omitempty"`
	Owner        string        `gorm:"not null" json:"owner"`
	Documents    []string      `gorm:"serializer:json" json:"documents,omitempty"`
	DocumentURL  string        `json:"document_url,omitempty"`

	// Copied by value from a template when Category is "custom"; the name is a
	// snapshot, not a reference (the template may be renamed or deleted later).
	CustomFields       CustomFieldList `gorm:"serializer:json" json:"custom_fields,omitempty"`
	CustomCategoryName string          `json:"custom_category_name,omitempty"`
}
