package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiitfinder/lostfound-system/internal/core/access"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

func withCaller(accountID string, role domain.Role) context.Context {
	return domain.WithIdentity(context.Background(), domain.RequestIdentity{
		AccountID: accountID,
		Identity:  accountID + "@x.com",
		Role:      role,
	})
}

func TestRequireIdentity(t *testing.T) {
	t.Run("no identity attached", func(t *testing.T) {
		_, err := access.RequireIdentity(context.Background())
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("identity attached", func(t *testing.T) {
		id, err := access.RequireIdentity(withCaller("u1", domain.RoleUser))
		require.NoError(t, err)
		assert.Equal(t, "u1", id.AccountID)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		wantErr error
	}{
		{"unauthenticated", context.Background(), domain.ErrUnauthenticated},
		{"user denied", withCaller("u1", domain.RoleUser), domain.ErrForbidden},
		{"admin permitted", withCaller("a1", domain.RoleAdmin), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := access.RequireRole(tt.ctx, domain.RoleAdmin)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		owner   string
		wantErr error
	}{
		{"unauthenticated before ownership", context.Background(), "u1", domain.ErrUnauthenticated},
		{"owner with user role", withCaller("u1", domain.RoleUser), "u1", nil},
		{"non-owner user", withCaller("u2", domain.RoleUser), "u1", domain.ErrForbidden},
		{"admin on foreign resource", withCaller("a1", domain.RoleAdmin), "u1", nil},
		{"admin on ownerless resource", withCaller("a1", domain.RoleAdmin), "", nil},
		{"user on ownerless resource", withCaller("", domain.RoleUser), "", domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := access.RequireOwnerOrAdmin(tt.ctx, tt.owner)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
