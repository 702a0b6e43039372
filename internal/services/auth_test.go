package services

import (
	"errors"
	"testing"
)

func TestRegisterLoginValidate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("alice@example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" {
		t.Fatal("Register returned empty token")
	}

	userID, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if userID == "" {
		t.Fatal("ValidateToken returned empty user id")
	}

	loginToken, err := svc.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	loginID, err := svc.ValidateToken(loginToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if loginID != userID {
		t.Fatalf("login resolved user %q, register resolved %q", loginID, userID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	if _, err := svc.Register("alice@example.com", "Alice", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register("Alice@Example.com", "Other", "password456"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email got %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	if _, err := svc.Register("alice@example.com", "Alice", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Login("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email got %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token validated")
	}

	other := NewAuthService(db, "different-secret")
	token, err := other.GenerateToken("some-user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret validated")
	}
}
