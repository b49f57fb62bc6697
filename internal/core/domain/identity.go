package domain

import "context"

type contextKey string

const contextKeyIdentity = contextKey("request_identity")

// RequestIdentity is the caller resolved by the authentication gate. It lives
// only as long as the request context that carries it.
type RequestIdentity struct {
	AccountID   string
	Identity    string
	DisplayName string
	Role        Role
}

// IdentityFromAccount builds the request-scoped view of an account.
func IdentityFromAccount(a *Account) RequestIdentity {
	return RequestIdentity{
		AccountID:   a.ID,
		Identity:    a.Identity,
		DisplayName: a.DisplayName,
		Role:        a.Role,
	}
}

// IsAdmin reports whether the identity carries the ADMIN role.
func (id RequestIdentity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id RequestIdentity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity, id)
}

// IdentityFromContext extracts the identity attached by the authentication gate.
// Returns false when the request is unauthenticated.
func IdentityFromContext(ctx context.Context) (RequestIdentity, bool) {
	id, ok := ctx.Value(contextKeyIdentity).(RequestIdentity)
	return id, ok
}
