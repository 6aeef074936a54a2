package jwtutil

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, 42, "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.Subject != "42" {
		t.Errorf("expected subject 42, got %q", claims.Subject)
	}
}

func TestParseRejects(t *testing.T) {
	valid, _ := GenerateToken("secret", time.Hour, 1, "bob")
	expired, _ := GenerateToken("secret", -time.Minute, 1, "bob")

	tests := map[string]struct {
		secret string
		token  string
	}{
		"wrong secret": {secret: "other", token: valid},
		"expired":      {secret: "secret", token: expired},
		"garbage":      {secret: "secret", token: "not.a.token"},
	}
	for name, tt := range tests {
		if _, err := ParseToken(tt.secret, tt.token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
