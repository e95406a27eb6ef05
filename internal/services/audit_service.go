package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"nidhi/internal/logger"
	"nidhi/internal/models"
)

// auditService records who did what to which resource. Logging is
// best-effort: a failed audit write must never fail the request it describes.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log writes an audit entry for a mutation.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}

	if len(changes) > 0 {
		encoded, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("failed to encode audit changes", "error", err, "action", action)
		} else {
			entry.Changes = string(encoded)
		}
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Warnw("failed to write audit log",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
		)
	}
}
