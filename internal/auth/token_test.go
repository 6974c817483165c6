package auth

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

func TestSessionRoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour, time.Minute)
	u := &models.User{ID: 42, Role: models.RoleAdmin}

	tok, err := iss.Session(u)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c, err := iss.ParseSession(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, err := c.UserID()
	if err != nil || id != 42 {
		t.Errorf("unexpected id %d %v", id, err)
	}
	if c.Role != models.RoleAdmin {
		t.Errorf("unexpected role %s", c.Role)
	}
}

func TestSessionRejectsOtherSecret(t *testing.T) {
	tok, _ := NewIssuer("a", time.Hour, time.Minute).Session(&models.User{ID: 1})

	if _, err := NewIssuer("b", time.Hour, time.Minute).ParseSession(tok); err == nil {
		t.Error("expected error for token signed with other secret")
	}
}

func TestSessionRejectsExpired(t *testing.T) {
	iss := NewIssuer("secret", -time.Minute, time.Minute)
	tok, _ := iss.Session(&models.User{ID: 1})

	if _, err := iss.ParseSession(tok); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestResetTokenIsNotASession(t *testing.T) {
	iss := NewIssuer("secret", time.Hour, time.Minute)
	u := &models.User{ID: 7, PasswordHash: "hash-1"}

	tok, err := iss.Reset(u)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := iss.ParseSession(tok); err == nil {
		t.Error("reset token accepted as session")
	}

	c, err := iss.ParseReset(tok)
	if err != nil {
		t.Fatalf("parse reset: %v", err)
	}
	if c.Fingerprint != Fingerprint("hash-1") {
		t.Error("fingerprint mismatch")
	}
	if c.Fingerprint == Fingerprint("hash-2") {
		t.Error("fingerprint must change with the password hash")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("segredo123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "segredo123") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "outra") {
		t.Error("expected mismatch")
	}
}
