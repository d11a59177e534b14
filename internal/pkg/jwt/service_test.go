package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateValidate_RoundTripClaims(t *testing.T) {
	s := NewHMACService("secret", time.Hour, "itapp")
	id := uuid.New()

	tok, err := s.Generate(id, "a@b.io", "student")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	c, err := s.Validate(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.UserID != id || c.Email != "a@b.io" || c.Role != "student" {
		t.Fatalf("unexpected claims %+v", c)
	}
}

func TestValidate_Expired(t *testing.T) {
	s := NewHMACService("secret", time.Minute, "itapp")
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	tok, err := s.Generate(uuid.New(), "a@b.io", "company")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := s.Validate(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	a := NewHMACService("secret-a", time.Hour, "itapp")
	b := NewHMACService("secret-b", time.Hour, "itapp")

	tok, err := a.Generate(uuid.New(), "a@b.io", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := b.Validate(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := b.Validate("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestGenerate_RequiresRole(t *testing.T) {
	s := NewHMACService("secret", time.Hour, "itapp")
	if _, err := s.Generate(uuid.New(), "a@b.io", ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
