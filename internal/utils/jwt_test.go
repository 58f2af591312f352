// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", "user-123", time.Hour, "secret-key")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %s", claims.Issuer)
	}
	if claims.Subject != "user-123" {
		t.Errorf("expected subject 'user-123', got %s", claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "u", time.Hour, "key"},
		{"empty user", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "u", 0, "key"},
		{"empty key", "iss", "u", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateJWTToken(tt.issuer, tt.userID, tt.duration, tt.key); err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	genToken, _ := GenerateJWTToken("test-issuer", "user-456", 5*time.Minute, "secret-key")

	parsed, err := ValidateAndParseJWTToken(genToken.SignedString, "secret-key", "test-issuer")
	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsed.UserID != "user-456" {
		t.Errorf("expected userID user-456, got %s", parsed.UserID)
	}
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, _ := GenerateJWTToken("real-issuer", "u", time.Hour, "key")
	expired, _ := GenerateJWTToken("real-issuer", "u", -time.Second, "key")

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"wrong key", valid.SignedString, "other-key", "real-issuer"},
		{"wrong issuer", valid.SignedString, "key", "fake-issuer"},
		{"expired", expired.SignedString, "key", "real-issuer"},
		{"malformed", "not.a.token", "key", "real-issuer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseUserIDFromJWT(t *testing.T) {
	genToken, _ := GenerateJWTToken("iss", "user-789", time.Hour, "key")

	userID, err := ParseUserIDFromJWT(genToken.SignedString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-789" {
		t.Errorf("expected user-789, got %s", userID)
	}

	if _, err := ParseUserIDFromJWT("garbage"); err == nil {
		t.Error("expected error for garbage token")
	}
}
