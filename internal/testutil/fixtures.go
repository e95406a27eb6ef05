package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"nidhi/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAsset creates a bank asset with the given value (in minor units).
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, value int64) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Asset %d", nextID()),
		Category: models.AssetCategoryBank,
		Value:    value,
		Owner:    "Self",
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestLiability creates a loan liability with the given outstanding balance.
func CreateTestLiability(t *testing.T, db *gorm.DB, userID string, balance int64) *models.Liability {
	t.Helper()

	liability := &models.Liability{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Liability %d", nextID()),
		Category: models.LiabilityCategoryLoan,
		Balance:  balance,
		Owner:    "Self",
	}
	if err := db.Create(liability).Error; err != nil {
		t.Fatalf("failed to create test liability: %v", err)
	}
	return liability
}

// CreateTestTemplate creates a custom category template with one text field.
func CreateTestTemplate(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryTemplateType) *models.CustomCategoryTemplate {
	t.Helper()

	template := &models.CustomCategoryTemplate{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Template %d", nextID()),
		CategoryType: categoryType,
		Fields: models.CustomFieldList{
			{ID: fmt.Sprintf("field-%d", nextID()), Name: "Notes", Type: models.FieldTypeText},
		},
	}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return template
}

// CreateTestAssetTransaction creates a transaction against an asset.
func CreateTestAssetTransaction(t *testing.T, db *gorm.DB, userID, assetID string, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:  userID,
		AssetID: &assetID,
		Type:    txType,
		Amount:  amount,
		Date:    date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestLiabilityTransaction creates a transaction against a liability.
func CreateTestLiabilityTransaction(t *testing.T, db *gorm.DB, userID, liabilityID string, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		LiabilityID: &liabilityID,
		Type:        txType,
		Amount:      amount,
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestSchedule creates an active monthly schedule against a liability.
func CreateTestSchedule(t *testing.T, db *gorm.DB, userID, liabilityID string, amount int64, dayOfMonth int, startDate time.Time) *models.RecurringSchedule {
	t.Helper()

	schedule := &models.RecurringSchedule{
		UserID:      userID,
		LiabilityID: &liabilityID,
		Amount:      amount,
		DayOfMonth:  dayOfMonth,
		StartDate:   startDate,
		Description: fmt.Sprintf("Test Schedule %d", nextID()),
		IsActive:    true,
	}
	if err := db.Create(schedule).Error; err != nil {
		t.Fatalf("failed to create test schedule: %v", err)
	}
	return schedule
}
