package security

import (
	"testing"
	"time"
)

func TestTokenProvider_IssueAccess(t *testing.T) {
	p := NewTestTokenProvider()

	access, jti, exp, err := p.IssueAccess("u1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if access == "" || jti == "" {
		t.Fatal("access token or jti empty")
	}
	if exp.Before(time.Now()) {
		t.Fatal("expires at in the past")
	}

	uid, err := p.ValidateAccess(access)
	if err != nil {
		t.Fatalf("ValidateAccess: %v", err)
	}
	if uid != "u1" {
		t.Errorf("ValidateAccess: got userID=%q, want %q", uid, "u1")
	}
}

func TestTokenProvider_ValidateAccessInvalid(t *testing.T) {
	p := NewTestTokenProvider()
	if _, err := p.ValidateAccess("invalid-token"); err != ErrInvalidToken {
		t.Errorf("ValidateAccess invalid token: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateAccessWrongSecret(t *testing.T) {
	p := NewTokenProvider([]byte("secret-a"), "test-issuer", 15*time.Minute)
	other := NewTokenProvider([]byte("secret-b"), "test-issuer", 15*time.Minute)

	access, _, _, err := p.IssueAccess("u1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := other.ValidateAccess(access); err != ErrInvalidToken {
		t.Errorf("ValidateAccess with wrong secret: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateAccessWrongIssuer(t *testing.T) {
	p := NewTokenProvider([]byte("shared-secret"), "issuer-a", 15*time.Minute)
	other := NewTokenProvider([]byte("shared-secret"), "issuer-b", 15*time.Minute)

	access, _, _, err := p.IssueAccess("u1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := other.ValidateAccess(access); err != ErrInvalidToken {
		t.Errorf("ValidateAccess with wrong issuer: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateAccessExpired(t *testing.T) {
	p := NewTokenProvider([]byte("shared-secret"), "test-issuer", -time.Minute)

	access, _, _, err := p.IssueAccess("u1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := p.ValidateAccess(access); err != ErrInvalidToken {
		t.Errorf("ValidateAccess expired token: want ErrInvalidToken, got %v", err)
	}
}
