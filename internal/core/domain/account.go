package domain

import (
	"strings"
	"time"
)

// Role is the single authorization tag carried by every account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account models a registered actor in the system.
type Account struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"name"`
	Identity     string    `json:"email"`
	SecretDigest string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeIdentity returns the canonical form of an identity key.
// Identities are compared case-insensitively, so they are stored lower-cased.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
