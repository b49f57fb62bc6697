package ports

import (
	"context"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

// ItemFilter narrows List results. Empty fields are ignored.
type ItemFilter struct {
	Status   string
	Category string
	Location string // case-insensitive substring match
	PostedBy string // owner account ID
}

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// FindByID returns domain.ErrItemNotFound when no item matches.
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
