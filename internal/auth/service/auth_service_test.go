package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aluyapeter/fin-doc/internal/security"
	"github.com/aluyapeter/fin-doc/internal/user/domain"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	hasher := security.NewHasher(bcrypt.MinCost)
	tokens := security.NewTestTokenProvider()
	return NewAuthService(repo, hasher, tokens, zap.NewNop()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), "Ada@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "correct horse" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	res, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.UserID != user.ID {
		t.Errorf("expected login for %q, got %q", user.ID, res.UserID)
	}
	if res.AccessToken == "" {
		t.Error("expected an access token")
	}
	if !res.ExpiresAt.After(user.CreatedAt) {
		t.Error("expected a future expiry")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing at sign", "not-an-email", "long enough pw", ErrInvalidEmail},
		{"missing domain", "ada@", "long enough pw", ErrInvalidEmail},
		{"empty email", "", "long enough pw", ErrInvalidEmail},
		{"short password", "ada@example.com", "short", ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.email, tc.password); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), "ada@example.com", "correct horse"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "ADA@example.com", "other password"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), "ada@example.com", "correct horse"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "ada@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	// Unknown email reports the same error as a wrong password.
	if _, err := svc.Login(context.Background(), "nobody@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
