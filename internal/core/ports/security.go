package ports

import (
	"context"
	"time"
)

// PasswordHasher is a one-way, salted, adaptive hashing primitive.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenService mints and checks bearer tokens.
type TokenService interface {
	Issue(identity string) (token string, expiresAt time.Time, err error)
	// Validate returns the embedded identity. Every failure wraps
	// domain.ErrInvalidToken.
	Validate(token string) (string, error)
}

// AttemptLimiter bounds failed login attempts per identity.
type AttemptLimiter interface {
	Blocked(ctx context.Context, identity string) (bool, error)
	RecordFailure(ctx context.Context, identity string) error
	Reset(ctx context.Context, identity string) error
}
