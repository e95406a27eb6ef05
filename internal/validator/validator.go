// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_category", validateAssetCategory)
		_ = v.RegisterValidation("liability_category", validateLiabilityCategory)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_template_type", validateCategoryTemplateType)
		_ = v.RegisterValidation("field_type", validateFieldType)
	}
}

func validateAssetCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cash", "bank", "investment", "property", "vehicle", "jewelry", "other", "custom":
		return true
	}
	return false
}

func validateLiabilityCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "credit", "loan", "mortgage", "tax", "other", "custom":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "emi_payment", "payment", "deposit", "withdrawal", "interest", "adjustment":
		return true
	}
	return false
}

func validateCategoryTemplateType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asset", "liability":
		return true
	}
	return false
}

func validateFieldType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "text", "textarea", "number", "currency", "percentage", "date", "email", "phone", "url":
		return true
	}
	return false
}
