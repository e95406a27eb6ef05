package middleware

import (
	"testing"

	"nidhi/internal/models"
)

func testUser() *models.User {
	return &models.User{
		Base:  models.Base{ID: "user-1"},
		Email: "tokens@example.com",
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	t.Run("tokens_are_unique", func(t *testing.T) {
		user := testUser()

		// Claim timestamps have second resolution, so two tokens minted
		// back to back must still differ for rotation to distinguish the
		// superseded one.
		first, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		second, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		if first == second {
			t.Fatal("expected consecutive refresh tokens to differ")
		}
		if HashToken(first) == HashToken(second) {
			t.Error("expected consecutive refresh token hashes to differ")
		}
	})

	t.Run("claims_carry_unique_id", func(t *testing.T) {
		user := testUser()

		first, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		second, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		firstClaims, err := ValidateRefreshToken(first)
		if err != nil {
			t.Fatalf("failed to validate token: %v", err)
		}
		secondClaims, err := ValidateRefreshToken(second)
		if err != nil {
			t.Fatalf("failed to validate token: %v", err)
		}

		if firstClaims.ID == "" {
			t.Error("expected a non-empty token ID claim")
		}
		if firstClaims.ID == secondClaims.ID {
			t.Error("expected distinct token ID claims")
		}
		if firstClaims.UserID != user.ID {
			t.Errorf("expected user ID %q, got %q", user.ID, firstClaims.UserID)
		}
	})
}

func TestValidateRefreshToken(t *testing.T) {
	t.Run("rejects_access_token", func(t *testing.T) {
		access, err := GenerateAccessToken(testUser())
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		if _, err := ValidateRefreshToken(access); err == nil {
			t.Error("expected access token to be rejected as a refresh token")
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := ValidateRefreshToken("not-a-jwt"); err == nil {
			t.Error("expected malformed token to be rejected")
		}
	})
}
