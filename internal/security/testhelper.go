package security

import "time"

// NewTestTokenProvider returns a TokenProvider with a fixed secret.
// For unit tests only. Callers must not use in production.
func NewTestTokenProvider() *TokenProvider {
	return NewTokenProvider([]byte("test-secret-not-for-production"), "test-issuer", 15*time.Minute)
}
