// Package access holds the authorization predicates every protected operation
// consults before performing its effect. They read the RequestIdentity attached
// by the authentication gate and never touch storage.
//
// Order of evaluation is fixed: a missing identity always yields
// domain.ErrUnauthenticated before role or ownership is considered, so the two
// error kinds stay distinguishable to clients.
package access

import (
	"context"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

// RequireIdentity permits any authenticated caller.
func RequireIdentity(ctx context.Context) (domain.RequestIdentity, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return domain.RequestIdentity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// RequireRole permits callers whose role equals role.
func RequireRole(ctx context.Context, role domain.Role) (domain.RequestIdentity, error) {
	id, err := RequireIdentity(ctx)
	if err != nil {
		return id, err
	}
	if id.Role != role {
		return id, domain.ErrForbidden
	}
	return id, nil
}

// RequireOwnerOrAdmin permits the resource owner and any administrator.
func RequireOwnerOrAdmin(ctx context.Context, ownerID string) (domain.RequestIdentity, error) {
	id, err := RequireIdentity(ctx)
	if err != nil {
		return id, err
	}
	if id.IsAdmin() {
		return id, nil
	}
	if ownerID != "" && id.AccountID == ownerID {
		return id, nil
	}
	return id, domain.ErrForbidden
}
