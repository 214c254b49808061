package utils

import (
	"testing"
	"time"

	"venue-api/core/config"

	"github.com/google/uuid"
)

func loadTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := config.Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	loadTestConfig(t)

	userID := uuid.New()
	token, err := GenerateToken(userID, []string{"admin", "members"}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := ValidateAndParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.UserID != userID {
		t.Errorf("user id: %v", data.UserID)
	}
	if !data.HasCapability("admin") || !data.HasCapability("members") {
		t.Errorf("capabilities lost: %v", data.Capabilities)
	}
	if data.HasCapability("superuser") {
		t.Error("unexpected capability")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateToken(uuid.New(), nil, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateAndParseToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateToken(uuid.New(), []string{"admin"}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateAndParseToken(token + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestNilTokenDataHasNoCapabilities(t *testing.T) {
	var data *TokenData
	if data.HasCapability("admin") {
		t.Fatal("nil token must carry no capabilities")
	}
}
