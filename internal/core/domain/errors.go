package domain

import "errors"

// Error kinds surfaced to API clients. Each maps to exactly one status/code pair
// in the HTTP error handler; wrapping with %w keeps the kind while adding detail
// for logs.
var (
	ErrDuplicateIdentity  = errors.New("identity already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrAlreadyExists      = errors.New("admin account already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrItemNotFound    = errors.New("item not found")
)
