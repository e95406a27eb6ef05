package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/logger"
	"nidhi/internal/models"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// respondSuccess writes the standard success envelope.
func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"success":   true,
		"message":   message,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// parseDate parses an RFC3339 or YYYY-MM-DD date string.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
		if err != nil {
			return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format")
		}
	}
	return parsed, nil
}

// CustomFieldRequest represents one custom field in a request payload.
type CustomFieldRequest struct {
	ID          string            `json:"id"`
	Name        string            `json:"name" binding:"required,min=1,max=100"`
	Type        models.FieldType  `json:"type" binding:"required,field_type"`
	Required    bool              `json:"required"`
	Placeholder string            `json:"placeholder" binding:"max=200"`
	Value       models.FieldValue `json:"value"`
}

func fieldsFromRequest(fields []CustomFieldRequest) models.CustomFieldList {
	out := make(models.CustomFieldList, 0, len(fields))
	for _, f := range fields {
		out = append(out, models.CustomField{
			ID:          f.ID,
			Name:        f.Name,
			Type:        f.Type,
			Required:    f.Required,
			Placeholder: f.Placeholder,
			Value:       f.Value,
		})
	}
	return out
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse represents the standard success envelope.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}
