package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"pdfsearch/internal/pkg/jwtutil"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(&memUserStore{}, testSecret, time.Hour)

	reg, err := svc.Register(ctx, RegisterInput{Username: " alice ", Email: "Alice@Example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.User.Username != "alice" || reg.User.Email != "alice@example.com" {
		t.Errorf("expected trimmed and lowercased identity, got %+v", reg.User)
	}
	if reg.User.PasswordHash == "password123" {
		t.Error("password stored in plain text")
	}

	claims, err := jwtutil.ParseToken(testSecret, reg.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != reg.User.ID {
		t.Errorf("expected token for user %d, got %d", reg.User.ID, claims.UserID)
	}

	login, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("login returned user %d, want %d", login.User.ID, reg.User.ID)
	}

	user, err := svc.GetUserByID(ctx, reg.User.ID)
	if err != nil || user == nil || user.Username != "alice" {
		t.Errorf("unexpected lookup result %+v, %v", user, err)
	}
}

func TestRegisterErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(&memUserStore{}, testSecret, time.Hour)
	if _, err := svc.Register(ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "password123"}); err != nil {
		t.Fatalf("seed register: %v", err)
	}

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{name: "short password", input: RegisterInput{Username: "carol", Email: "carol@example.com", Password: "short"}, want: ErrInvalidInput},
		{name: "missing email", input: RegisterInput{Username: "carol", Password: "password123"}, want: ErrInvalidInput},
		{name: "duplicate username", input: RegisterInput{Username: "bob", Email: "other@example.com", Password: "password123"}, want: ErrUsernameExists},
		{name: "duplicate email", input: RegisterInput{Username: "bobby", Email: "BOB@example.com", Password: "password123"}, want: ErrEmailExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(&memUserStore{}, testSecret, time.Hour)
	if _, err := svc.Register(ctx, RegisterInput{Username: "dave", Email: "dave@example.com", Password: "password123"}); err != nil {
		t.Fatalf("seed register: %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Username: "dave", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("wrong password: expected ErrInvalidCredential, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Username: "nobody", Password: "password123"}); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("unknown user: expected ErrInvalidCredential, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty input: expected ErrInvalidInput, got %v", err)
	}
}
