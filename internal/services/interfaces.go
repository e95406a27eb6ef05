package services

import (
	"time"

	"nidhi/internal/models"
	"nidhi/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CreateAssetInput holds the attributes for a new asset.
type CreateAssetInput struct {
	Name               string
	Category           models.AssetCategory
	Value              int64
	PurchaseDate       string
	Location           string
	Description        string
	Owner              string
	Documents          []string
	DocumentURL        string
	CustomFields       models.CustomFieldList
	CustomCategoryName string
}

// UpdateAssetInput holds a partial asset update. Nil means "leave unchanged";
// a present zero value is a valid replacement.
type UpdateAssetInput struct {
	Name               *string
	Category           *models.AssetCategory
	Value              *int64
	PurchaseDate       *string
	Location           *string
	Description        *string
	Owner              *string
	Documents          *[]string
	DocumentURL        *string
	CustomFields       *models.CustomFieldList
	CustomCategoryName *string
}

// CategoryBreakdown is one row of a per-category summary.
type CategoryBreakdown struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int64  `json:"count"`
}

// RecordSummary aggregates a user's assets or liabilities.
type RecordSummary struct {
	Total      int64               `json:"total"`
	ByCategory []CategoryBreakdown `json:"by_category"`
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(userID string, input CreateAssetInput) (*models.Asset, error)
	GetUserAssets(userID string, page pagination.PageRequest, category string) (*pagination.PageResponse[models.Asset], error)
	GetAssetByID(userID, assetID string) (*models.Asset, error)
	UpdateAsset(userID, assetID string, input UpdateAssetInput) (*models.Asset, error)
	DeleteAsset(userID, assetID string) error
	GetAssetSummary(userID string) (*RecordSummary, error)
}

// CreateLiabilityInput holds the attributes for a new liability.
type CreateLiabilityInput struct {
	Name               string
	Category           models.LiabilityCategory
	Balance            int64
	InterestRate       float64
	DueDate            string
	Institution        string
	Owner              string
	Notes              string
	CustomFields       models.CustomFieldList
	CustomCategoryName string
}

// UpdateLiabilityInput holds a partial liability update.
type UpdateLiabilityInput struct {
	Name               *string
	Category           *models.LiabilityCategory
	Balance            *int64
	InterestRate       *float64
	DueDate            *string
	Institution        *string
	Owner              *string
	Notes              *string
	CustomFields       *models.CustomFieldList
	CustomCategoryName *string
}

// LiabilityServicer defines the contract for liability-related business logic.
type LiabilityServicer interface {
	CreateLiability(userID string, input CreateLiabilityInput) (*models.Liability, error)
	GetUserLiabilities(userID string, page pagination.PageRequest, category string) (*pagination.PageResponse[models.Liability], error)
	GetLiabilityByID(userID, liabilityID string) (*models.Liability, error)
	UpdateLiability(userID, liabilityID string, input UpdateLiabilityInput) (*models.Liability, error)
	DeleteLiability(userID, liabilityID string) error
	GetLiabilitySummary(userID string) (*RecordSummary, error)
}

// CreateTemplateInput holds the attributes for a new custom category template.
type CreateTemplateInput struct {
	Name         string
	CategoryType models.CategoryTemplateType
	Description  string
	Icon         string
	Fields       models.CustomFieldList
}

// UpdateTemplateInput holds a partial template update. Nil pointers mean
// "leave unchanged"; a supplied Fields slice replaces the whole sequence.
type UpdateTemplateInput struct {
	Name         *string
	CategoryType *models.CategoryTemplateType
	Description  *string
	Icon         *string
	Fields       *models.CustomFieldList
}

// CustomCategoryServicer defines the contract for custom category templates.
type CustomCategoryServicer interface {
	ListTemplates(userID string, categoryType string) ([]models.CustomCategoryTemplate, error)
	GetTemplateByID(userID, templateID string) (*models.CustomCategoryTemplate, error)
	CreateTemplate(userID string, input CreateTemplateInput) (*models.CustomCategoryTemplate, error)
	UpdateTemplate(userID, templateID string, input UpdateTemplateInput) (*models.CustomCategoryTemplate, error)
	DeleteTemplate(userID, templateID string) error
	HydrateFields(userID, templateID string) (models.CustomFieldList, error)
}

// CreateTransactionInput holds the attributes for a new transaction.
// Exactly one of AssetID and LiabilityID must be set.
type CreateTransactionInput struct {
	AssetID     *string
	LiabilityID *string
	Type        models.TransactionType
	Amount      int64
	Date        time.Time
	Description string
	Notes       string
}

// UpdateTransactionInput holds a partial transaction update. The target
// record cannot be changed after creation.
type UpdateTransactionInput struct {
	Type        *models.TransactionType
	Amount      *int64
	Date        *time.Time
	Description *string
	Notes       *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	AssetID     *string
	LiabilityID *string
	Type        *models.TransactionType
	FromDate    *time.Time
	ToDate      *time.Time
}

// TransactionServicer defines the contract for transaction-related business
// logic, including keeping target balances consistent with applied
// transactions.
type TransactionServicer interface {
	CreateTransaction(userID string, input CreateTransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, input UpdateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// CreateScheduleInput holds the attributes for a new recurring schedule.
// Exactly one of AssetID and LiabilityID must be set.
type CreateScheduleInput struct {
	AssetID     *string
	LiabilityID *string
	Amount      int64
	DayOfMonth  int
	StartDate   time.Time
	EndDate     *time.Time
	Description string
}

// UpdateScheduleInput holds a partial schedule update.
type UpdateScheduleInput struct {
	Amount      *int64
	DayOfMonth  *int
	StartDate   *time.Time
	EndDate     *time.Time
	Description *string
	IsActive    *bool
}

// ScheduleFilter restricts schedule listing and projection to one target.
type ScheduleFilter struct {
	AssetID     *string
	LiabilityID *string
}

// IsZero reports whether no target filter is set.
func (f ScheduleFilter) IsZero() bool {
	return f.AssetID == nil && f.LiabilityID == nil
}

// PaymentStatus classifies a projected occurrence against the ledger.
type PaymentStatus string

// Payment statuses.
const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusDueToday PaymentStatus = "due_today"
	PaymentStatusUpcoming PaymentStatus = "upcoming"
)

// UpcomingPayment is one projected occurrence of a recurring schedule.
type UpcomingPayment struct {
	Date     time.Time                `json:"date"`
	Amount   int64                    `json:"amount"`
	Status   PaymentStatus            `json:"status"`
	Schedule models.RecurringSchedule `json:"schedule"`
}

// RecurringScheduleServicer defines the contract for recurring schedules and
// the upcoming-payment projection.
type RecurringScheduleServicer interface {
	CreateSchedule(userID string, input CreateScheduleInput) (*models.RecurringSchedule, error)
	GetSchedules(userID string, filter ScheduleFilter) ([]models.RecurringSchedule, error)
	GetScheduleByID(userID, scheduleID string) (*models.RecurringSchedule, error)
	UpdateSchedule(userID, scheduleID string, input UpdateScheduleInput) (*models.RecurringSchedule, error)
	DeleteSchedule(userID, scheduleID string) error
	ProjectUpcoming(userID string, filter ScheduleFilter, months int, from time.Time) ([]UpcomingPayment, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
