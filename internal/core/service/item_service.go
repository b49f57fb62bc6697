package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kiitfinder/lostfound-system/internal/core/access"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
	"github.com/kiitfinder/lostfound-system/internal/pkg/validation"
)

const statusRule = "required,oneof=lost found claimed resolved"

type itemService struct {
	repo     ports.ItemRepository
	validate *validation.Validator
	log      zerolog.Logger
}

// NewItemService returns an ItemService implementation.
func NewItemService(repo ports.ItemRepository, log zerolog.Logger) ports.ItemService {
	return &itemService{repo: repo, validate: validation.New(), log: log}
}

// Create stores a new item owned by the caller.
func (s *itemService) Create(ctx context.Context, in ports.ItemInput) (*domain.Item, error) {
	caller, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.checkInput(in); err != nil {
		return nil, err
	}
	status := statusOr(in.Status, domain.ItemLost)

	now := time.Now().UTC()
	item := &domain.Item{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    in.Location,
		Category:    in.Category,
		Status:      status,
		Reward:      in.Reward,
		ImageURL:    in.ImageURL,
		PostedBy:    domain.AccountRef{ID: caller.AccountID, Name: caller.DisplayName},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info().Str("item_id", created.ID).Str("account_id", caller.AccountID).Msg("item created")
	return created, nil
}

func (s *itemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, in ports.ListItemsInput) ([]*domain.Item, error) {
	if in.Status != "" && !domain.ItemStatus(in.Status).Valid() {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.List(ctx, ports.ItemFilter{
		Status:   in.Status,
		Category: in.Category,
		Location: in.Location,
	})
}

// ListMine returns the items posted by the caller.
func (s *itemService) ListMine(ctx context.Context) ([]*domain.Item, error) {
	caller, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ItemFilter{PostedBy: caller.AccountID})
}

// Update replaces the editable fields of an item. Only the owner or an
// administrator may update it; ownership itself never changes.
func (s *itemService) Update(ctx context.Context, id string, in ports.ItemInput) (*domain.Item, error) {
	item, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkInput(in); err != nil {
		return nil, err
	}
	status := statusOr(in.Status, item.Status)

	item.Title = strings.TrimSpace(in.Title)
	item.Description = in.Description
	item.Location = in.Location
	item.Category = in.Category
	item.Status = status
	item.Reward = in.Reward
	item.ImageURL = in.ImageURL
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (s *itemService) UpdateStatus(ctx context.Context, id, status string) (*domain.Item, error) {
	item, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Var("status", status, statusRule); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	item.Status = domain.ItemStatus(status)
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item status: %w", err)
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	item, err := s.loadOwned(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.log.Info().Str("item_id", item.ID).Msg("item deleted")
	return nil
}

// loadOwned rejects anonymous callers before touching storage, then applies
// the ownership predicate to the stored item.
func (s *itemService) loadOwned(ctx context.Context, id string) (*domain.Item, error) {
	if _, err := access.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := access.RequireOwnerOrAdmin(ctx, item.PostedBy.ID); err != nil {
		return nil, err
	}
	return item, nil
}

// checkInput is only called once the caller has passed the access checks.
func (s *itemService) checkInput(in ports.ItemInput) error {
	if err := s.validate.Validate(in); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return nil
}

func statusOr(raw string, fallback domain.ItemStatus) domain.ItemStatus {
	if raw == "" {
		return fallback
	}
	return domain.ItemStatus(raw)
}
