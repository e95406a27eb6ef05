package services

import (
	"testing"

	"nidhi/internal/models"
	"nidhi/internal/testutil"
)

func TestCreateLiability(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLiabilityService(db)
		user := testutil.CreateTestUser(t, db)

		liability, err := svc.CreateLiability(user.ID, CreateLiabilityInput{
			Name:         "Car Loan",
			Category:     models.LiabilityCategoryLoan,
			Balance:      200000,
			InterestRate: 8.5,
			Owner:        "Bob",
		})
		testutil.AssertNoError(t, err)

		if liability.Balance != 200000 {
			t.Errorf("expected balance 200000, got %d", liability.Balance)
		}
		if liability.InterestRate != 8.5 {
			t.Errorf("expected rate 8.5, got %f", liability.InterestRate)
		}
	})

	t.Run("interest_rate_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLiabilityService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateLiability(user.ID, CreateLiabilityInput{
			Name:         "Bad Loan",
			Owner:        "Bob",
			InterestRate: 150,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLiabilityService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateLiability(user.ID, CreateLiabilityInput{
			Name:    "Bad Loan",
			Owner:   "Bob",
			Balance: -1,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateLiability(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLiabilityService(db)
		user := testutil.CreateTestUser(t, db)
		liability := testutil.CreateTestLiability(t, db, user.ID, 50000)

		institution := "HDFC Bank"
		updated, err := svc.UpdateLiability(user.ID, liability.ID, UpdateLiabilityInput{Institution: &institution})
		testutil.AssertNoError(t, err)
		if updated.Institution != "HDFC Bank" {
			t.Errorf("expected institution set, got %q", updated.Institution)
		}
		if updated.Balance != 50000 {
			t.Errorf("expected balance unchanged, got %d", updated.Balance)
		}
	})
}

func TestDeleteLiability(t *testing.T) {
	t.Run("transactions_survive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLiabilityService(db)
		txSvc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		liability := testutil.CreateTestLiability(t, db, user.ID, 50000)

		tx, err := txSvc.CreateTransaction(user.ID, CreateTransactionInput{
			LiabilityID: &liability.ID,
			Type:        models.TransactionTypePayment,
			Amount:      5000,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteLiability(user.ID, liability.ID))

		// The transaction row remains as history.
		stored, err := txSvc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if stored.Amount != 5000 {
			t.Errorf("expected transaction history intact, got amount %d", stored.Amount)
		}
	})
}

func TestGetLiabilitySummary(t *testing.T) {
	t.Run("totals_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLiabilityService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestLiability(t, db, user.ID, 100000)
		testutil.CreateTestLiability(t, db, user.ID, 50000)

		summary, err := svc.GetLiabilitySummary(user.ID)
		testutil.AssertNoError(t, err)
		if summary.Total != 150000 {
			t.Errorf("expected total 150000, got %d", summary.Total)
		}
	})
}
