package ports

import (
	"context"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

// ItemInput carries the editable fields of an item. Services validate it
// against these tags after the caller has been authorized.
type ItemInput struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Location    string  `json:"location"    validate:"max=200"`
	Category    string  `json:"category"    validate:"max=100"`
	Status      string  `json:"status"      validate:"omitempty,oneof=lost found claimed resolved"`
	Reward      float64 `json:"reward"      validate:"gte=0"`
	ImageURL    string  `json:"image_url"   validate:"omitempty,url"`
}

// ListItemsInput carries the public list filters.
type ListItemsInput struct {
	Status   string
	Category string
	Location string
}

// ItemService defines use-case operations for items. Mutations read the caller
// from ctx and enforce ownership.
type ItemService interface {
	Create(ctx context.Context, input ItemInput) (*domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, input ListItemsInput) ([]*domain.Item, error)
	ListMine(ctx context.Context) ([]*domain.Item, error)
	Update(ctx context.Context, id string, input ItemInput) (*domain.Item, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
}

// AdminService groups operations reserved for the ADMIN role.
type AdminService interface {
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	ListItems(ctx context.Context) ([]*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListItemsByAccount(ctx context.Context, accountID string) ([]*domain.Item, error)
}

// ProfileService exposes the caller's own account.
type ProfileService interface {
	Profile(ctx context.Context) (*domain.Account, error)
}
