package jwt

import (
	"testing"
	"time"

	"go-clinic-booking/config"

	"github.com/google/uuid"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService("test-secret")
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "doc@example.com", 1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if tokenID == "" {
		t.Fatal("empty token id")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user_id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "doc@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.RoleID != 1 {
		t.Errorf("role_id = %d, want 1", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("token_type = %q, want %q", claims.TokenType, AccessToken)
	}
	if claims.TokenID != tokenID {
		t.Errorf("token_id = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService("test-secret")

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "p@example.com", 2)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("token_type = %q, want %q", claims.TokenType, RefreshToken)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, _, err := newTestService("secret-a").GenerateAccessToken(uuid.New(), "x@example.com", 2)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := newTestService("secret-b").ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret validated")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: -time.Minute,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "x@example.com", 2)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}
