package models

import (
	"encoding/json"
	"fmt"
)

// CategoryTemplateType says whether a template applies to assets or liabilities
type CategoryTemplateType string

const (
	CategoryTemplateTypeAsset     CategoryTemplateType = "asset"
	CategoryTemplateTypeLiability CategoryTemplateType = "liability"
)

// FieldType is the input widget type of a custom field
type FieldType string

const (
	FieldTypeText       FieldType = "text"
	FieldTypeTextarea   FieldType = "textarea"
	FieldTypeNumber     FieldType = "number"
	FieldTypeCurrency   FieldType = "currency"
	FieldTypePercentage FieldType = "percentage"
	FieldTypeDate       FieldType = "date"
	FieldTypeEmail      FieldType = "email"
	FieldTypePhone      FieldType = "phone"
	FieldTypeURL        FieldType = "url"
)

// FieldValueKind tags the variant held by a FieldValue.
type FieldValueKind int

// FieldValue kinds.
const (
	FieldValueNull FieldValueKind = iota
	FieldValueText
	FieldValueNumber
)

// FieldValue is the value of a custom field on a record: a string, a number,
// or null. Template definitions always carry null; hydrated copies on records
// carry whatever the user entered. Marshals to the bare JSON value.
type FieldValue struct {
	kind FieldValueKind
	str  string
	num  float64
}

// TextValue returns a FieldValue holding a string.
func TextValue(s string) FieldValue { return FieldValue{kind: FieldValueText, str: s} }

// NumberValue returns a FieldValue holding a number.
func NumberValue(n float64) FieldValue { return FieldValue{kind: FieldValueNumber, num: n} }

// NullValue returns the null FieldValue. The zero value is equivalent.
func NullValue() FieldValue { return FieldValue{} }

// Kind returns the variant tag.
func (v FieldValue) Kind() FieldValueKind { return v.kind }

// IsNull reports whether the value is null.
func (v FieldValue) IsNull() bool { return v.kind == FieldValueNull }

// Text returns the string value; valid only when Kind is FieldValueText.
func (v FieldValue) Text() string { return v.str }

// Number returns the numeric value; valid only when Kind is FieldValueNumber.
func (v FieldValue) Number() float64 { return v.num }

// MarshalJSON encodes the value as null, a JSON string, or a JSON number.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case FieldValueText:
		return json.Marshal(v.str)
	case FieldValueNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, a JSON string, or a JSON number. Any other
// JSON value is rejected.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case nil:
		*v = FieldValue{}
	case string:
		*v = FieldValue{kind: FieldValueText, str: val}
	case float64:
		*v = FieldValue{kind: FieldValueNumber, num: val}
	default:
		return fmt.Errorf("custom field value must be a string, number, or null, got %T", raw)
	}
	return nil
}

// CustomField is one user-defined field. As part of a template it describes
// the field; hydrated onto an asset or liability it is an independent copy
// carrying a value, with no back-reference to the template.
type CustomField struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        FieldType  `json:"type"`
	Required    bool       `json:"required"`
	Placeholder string     `json:"placeholder,omitempty"`
	Value       FieldValue `json:"value"`
}

// CustomFieldList is stored as a JSON column on templates and records.
type CustomFieldList []CustomField

// CustomCategoryTemplate is a named, user-owned set of custom field
// definitions for assets or liabilities. Fields are copied by value onto
// records at selection time; deleting or renaming a template never touches
// records that already used it.
type CustomCategoryTemplate struct {
	Base
	UserID       string               `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string               `gorm:"not null" json:"name"`
	CategoryType CategoryTemplateType `gorm:"not null" json:"category_type"`
	Description  string               `json:"description,omitempty"`
	Icon         string               `json:"icon,omitempty"`
	Fields       CustomFieldList      `gorm:"serializer:json;not null" json:"fields"`
}
