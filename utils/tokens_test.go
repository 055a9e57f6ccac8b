package utils

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatal(err)
	}

	token, err := m.NewJWT("owner-1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := m.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if sub != "owner-1" {
		t.Fatalf("expected subject owner-1, got %s", sub)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	a, err := NewManager("key-a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewManager("key-b")
	if err != nil {
		t.Fatal(err)
	}

	token, err := a.NewJWT("owner-1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Parse(token); err == nil {
		t.Fatal("expected a signature error")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatal(err)
	}
	token, err := m.NewJWT("owner-1", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected an expiry error")
	}
}

func TestNewManagerRequiresKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected an error for an empty signing key")
	}
}

func TestNewTicketUnique(t *testing.T) {
	a, err := NewTicket()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewTicket()
	if err != nil {
		t.Fatal(err)
	}
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty tickets, got %q and %q", a, b)
	}
}
