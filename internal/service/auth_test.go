package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/datavault/datavault-go/internal/model"
)

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewAuthService(users, "test-secret", time.Hour), users
}

func TestRegisterEmptyName(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}

func TestRegisterEmptyEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Name:     "Test User",
		Password: "password123",
	})
	if !errors.Is(err, ErrEmailRequired) {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

func TestRegisterEmptyPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Name:  "Test User",
		Email: "test@example.com",
	})
	if !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "12345",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestRegisterGeneratesWalletAddress(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), model.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if resp.Token == "" {
		t.Error("Register() returned empty token")
	}
	if !strings.HasPrefix(resp.User.WalletAddress, "0x") {
		t.Errorf("wallet address = %q, want generated 0x address", resp.User.WalletAddress)
	}
}

func TestRegisterKeepsProvidedWalletAddress(t *testing.T) {
	svc, _ := newTestAuthService()

	addr := "0x1111111111111111111111111111111111111111"
	resp, err := svc.Register(context.Background(), model.CreateUserRequest{
		Name:          "Test User",
		Email:         "test@example.com",
		Password:      "password123",
		WalletAddress: addr,
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if resp.User.WalletAddress != addr {
		t.Errorf("wallet address = %q, want %q", resp.User.WalletAddress, addr)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	req := model.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), model.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("Login() returned empty token")
	}
	if resp.User.Email != "test@example.com" {
		t.Errorf("user email = %q", resp.User.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), model.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetUserMissing(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.GetUser(context.Background(), 42)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
