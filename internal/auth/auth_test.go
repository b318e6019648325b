package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
	"github.com/healthscript/healthscript-backend/internal/store"
)

func TestIssueAndParseToken(t *testing.T) {
	svc := NewTokenService("unit-test-secret", time.Minute)
	token, claims, err := svc.Issue(42, "a@example.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	if claims.ID == "" {
		t.Fatalf("expected a token id")
	}

	parsed, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if parsed.UserID != 42 || parsed.Email != "a@example.com" {
		t.Fatalf("parsed claims mismatch: %+v", parsed)
	}

	other := NewTokenService("another-secret", time.Minute)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token with wrong secret, got %v", err)
	}
	if _, err := svc.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for garbage, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	svc := NewTokenService("unit-test-secret", time.Minute)
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	token, _, err := svc.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := svc.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := store.NewMemory()
	svc := NewService(repo, NewTokenService("unit-test-secret", time.Hour))
	ctx := context.Background()

	cases := []struct {
		req  model.RegisterRequest
		want error
	}{
		{model.RegisterRequest{FirstName: "A", Email: "a@example.com", Password: "secret1"}, ErrMissingRegistration},
		{model.RegisterRequest{FirstName: "A", LastName: "B", Email: "not-an-email", Password: "secret1"}, ErrInvalidEmail},
		{model.RegisterRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "123"}, ErrWeakPassword},
		{model.RegisterRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Password: strings.Repeat("x", 73)}, ErrPasswordTooLong},
	}
	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("register %+v: expected %v, got %v", tc.req, tc.want, err)
		}
	}

	session, err := svc.Register(ctx, model.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "Ada@Example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.Token == "" || session.User.Name != "Ada Lovelace" || session.User.Email != "ada@example.com" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if _, err := repo.GetProfile(ctx, session.User.ID); err != nil {
		t.Fatalf("registration should create a profile: %v", err)
	}

	if _, err := svc.Register(ctx, model.RegisterRequest{
		FirstName: "Ada", LastName: "Again", Email: "ada@example.com", Password: "secret1",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}

	if _, err := svc.Login(ctx, model.LoginRequest{Email: "ada@example.com"}); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected missing credentials, got %v", err)
	}
	if _, err := svc.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "wrong!"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(ctx, model.LoginRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}

	login, err := svc.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := svc.Tokens().Parse(login.Token)
	if err != nil {
		t.Fatalf("parse login token: %v", err)
	}
	if claims.UserID != session.User.ID {
		t.Fatalf("expected token for user %d, got %d", session.User.ID, claims.UserID)
	}
}

func TestForgotPassword(t *testing.T) {
	svc := NewService(store.NewMemory(), NewTokenService("s", time.Hour))
	if err := svc.ForgotPassword(context.Background(), model.ForgotPasswordRequest{Email: "x"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}
	if err := svc.ForgotPassword(context.Background(), model.ForgotPasswordRequest{Email: "nobody@example.com"}); err != nil {
		t.Fatalf("unknown addresses must not be revealed: %v", err)
	}
}
