package ports

import (
	"context"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

// AccountRepository is the credential store. Identities are passed already
// normalized; implementations match them exactly.
type AccountRepository interface {
	// FindByIdentity returns domain.ErrAccountNotFound when no account matches.
	FindByIdentity(ctx context.Context, identity string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Create returns domain.ErrDuplicateIdentity when the identity is taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Delete(ctx context.Context, id string) error
}
