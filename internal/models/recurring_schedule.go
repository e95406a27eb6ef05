package models

import "time"

// RecurringSchedule describes a monthly payment expectation anchored to a day
// of the month, against exactly one asset or liability. Schedules are
// deactivated rather than deleted when a payment series ends; the projector
// only considers active schedules.
type RecurringSchedule struct {
	Base
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	AssetID     *string    `gorm:"type:uuid;index" json:"asset_id,omitempty"`
	LiabilityID *string    `gorm:"type:uuid;index" json:"liability_id,omitempty"`
	Amount      int64      `gorm:"not null" json:"amount"`
	DayOfMonth  int        `gorm:"not null" json:"day_of_month"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
}
