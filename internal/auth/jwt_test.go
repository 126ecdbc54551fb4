package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tacocloud/web/internal/auth"
)

func TestGenerateAndValidateSessionToken(t *testing.T) {
	secret := "test-secret"
	sessionID := uuid.New()

	token, err := auth.GenerateSessionToken(secret, sessionID, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	got, err := auth.ValidateSessionToken(secret, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if got != sessionID {
		t.Errorf("session ID: got %v, want %v", got, sessionID)
	}
}

func TestValidateSessionTokenWithWrongSecret(t *testing.T) {
	token, err := auth.GenerateSessionToken("secret-a", uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := auth.ValidateSessionToken("secret-b", token); err == nil {
		t.Fatal("expected error validating with wrong secret")
	}
}

func TestValidateSessionTokenExpired(t *testing.T) {
	token, err := auth.GenerateSessionToken("secret", uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := auth.ValidateSessionToken("secret", token); err == nil {
		t.Fatal("expected error validating expired token")
	}
}

func TestValidateSessionTokenWithInvalidString(t *testing.T) {
	if _, err := auth.ValidateSessionToken("secret", "not-a-jwt"); err == nil {
		t.Fatal("expected error validating invalid token string")
	}
}

func TestValidateSessionTokenRejectsForeignIssuer(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := auth.ValidateSessionToken("secret", token); err == nil {
		t.Fatal("expected error for foreign issuer")
	}
}

func TestValidateSessionTokenRejectsNonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "taco-cloud",
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := auth.ValidateSessionToken("secret", token); err == nil {
		t.Fatal("expected error for non-UUID subject")
	}
}
