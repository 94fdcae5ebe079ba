// Package service implements registration and credential-based login.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/user/domain"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Sentinel errors for the auth service; handlers map them to HTTP status codes.
var (
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrPasswordTooShort       = errors.New("password too short")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// PasswordHasher hashes and verifies login credentials.
type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Compare(hash string, password []byte) error
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	IssueAccess(userID string) (token, jti string, expiresAt time.Time, err error)
}

// LoginResult holds the outcome of a successful Login call.
type LoginResult struct {
	UserID      string
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService registers users and exchanges credentials for access tokens.
type AuthService struct {
	users  UserRepo
	hasher PasswordHasher
	tokens TokenIssuer
	logger *zap.Logger
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(users UserRepo, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates a user from an email and password. The email is lowercased
// and trimmed before the uniqueness check so the same address cannot register
// twice under different casings.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies the credentials and issues an access token. Unknown emails
// and wrong passwords both return ErrInvalidCredentials so a caller cannot
// probe which addresses exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		s.logger.Warn("login rejected", zap.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, _, expiresAt, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResult{UserID: user.ID, AccessToken: token, ExpiresAt: expiresAt}, nil
}
