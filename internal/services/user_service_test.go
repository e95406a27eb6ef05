package services

import (
	"testing"

	"nidhi/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice@Example.com", "password123", "Alice", "Smith")
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("password must be hashed")
		}
		if !user.IsActive {
			t.Error("new users must be active")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@example.com", "password123", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("DUP@example.com", "password123", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("database_unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewUserService(db)
		testutil.TeardownTestDB(t, db)

		// The duplicate-email check must surface a failed query instead of
		// treating it as zero matches and attempting the insert.
		_, err := svc.CreateUser("down@example.com", "password123", "", "")
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("verify@example.com", "password123", "", "")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "password123") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "abc123"))

	hash, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "abc123" {
		t.Errorf("expected stored hash, got %q", hash)
	}

	// Clearing invalidates the session.
	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, ""))
	hash, err = svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "" {
		t.Errorf("expected cleared hash, got %q", hash)
	}
}
