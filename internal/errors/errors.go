// Package errors provides custom error types for the Nidhi API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized        = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials  = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidRefreshToken = &AppError{Code: "INVALID_REFRESH_TOKEN", Message: "Invalid or expired refresh token", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Asset & liability errors.
var (
	ErrAssetNotFound     = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrLiabilityNotFound = &AppError{Code: "LIABILITY_NOT_FOUND", Message: "Liability not found", StatusCode: http.StatusNotFound}
)

// Custom category template errors.
var (
	ErrTemplateNotFound       = &AppError{Code: "TEMPLATE_NOT_FOUND", Message: "Custom category not found", StatusCode: http.StatusNotFound}
	ErrTemplateNameTaken      = &AppError{Code: "TEMPLATE_NAME_TAKEN", Message: "A custom category with this name already exists", StatusCode: http.StatusConflict}
	ErrTemplateFieldsRequired = &AppError{Code: "TEMPLATE_FIELDS_REQUIRED", Message: "At least one custom field is required", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound      = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionTarget = &AppError{Code: "INVALID_TRANSACTION_TARGET", Message: "Exactly one of asset_id or liability_id must be set", StatusCode: http.StatusBadRequest}
)

// Recurring schedule errors.
var (
	ErrScheduleNotFound = &AppError{Code: "SCHEDULE_NOT_FOUND", Message: "Recurring schedule not found", StatusCode: http.StatusNotFound}
)
