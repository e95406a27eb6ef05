package testutil_test

import (
	"testing"
	"time"

	"nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "assets", "liabilities", "custom_category_templates", "transactions", "recurring_schedules", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a non-empty ID")
	}

	asset := testutil.CreateTestAsset(t, db, user.ID, 5000)
	if asset.Value != 5000 {
		t.Errorf("expected value 5000, got %d", asset.Value)
	}

	liability := testutil.CreateTestLiability(t, db, user.ID, 100000)
	if liability.Balance != 100000 {
		t.Errorf("expected balance 100000, got %d", liability.Balance)
	}

	template := testutil.CreateTestTemplate(t, db, user.ID, models.CategoryTemplateTypeAsset)
	if len(template.Fields) != 1 {
		t.Errorf("expected 1 field, got %d", len(template.Fields))
	}

	tx := testutil.CreateTestAssetTransaction(t, db, user.ID, asset.ID, models.TransactionTypeDeposit, 1000, time.Now())
	if tx.Amount != 1000 {
		t.Errorf("expected amount 1000, got %d", tx.Amount)
	}

	schedule := testutil.CreateTestSchedule(t, db, user.ID, liability.ID, 2500, 15, time.Now())
	if !schedule.IsActive {
		t.Error("new schedule should be active")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrAssetNotFound, "custom message")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
