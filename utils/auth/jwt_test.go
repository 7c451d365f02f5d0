package auth

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret: "test-secret-do-not-use",
		Expiry: time.Hour,
		Issuer: "results-portal-test",
	})

	token, err := manager.GenerateAccessToken(7, "exam@college.test", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 7 || claims.Email != "exam@college.test" || claims.Role != "admin" {
		t.Errorf("claims = %+v, want user 7 / exam@college.test / admin", claims)
	}
	if claims.ID == "" {
		t.Error("expected a JTI on issued tokens")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret: "test-secret-do-not-use",
		Expiry: -time.Minute,
		Issuer: "results-portal-test",
	})

	token, err := manager.GenerateAccessToken(1, "exam@college.test", "staff")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := manager.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("got err %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTManager(JWTConfig{Secret: "secret-a", Expiry: time.Hour})
	verifier := NewJWTManager(JWTConfig{Secret: "secret-b", Expiry: time.Hour})

	token, err := issuer.GenerateAccessToken(1, "exam@college.test", "staff")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("got err %v, want ErrInvalidToken", err)
	}
}
