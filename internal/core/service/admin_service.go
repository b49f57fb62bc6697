package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kiitfinder/lostfound-system/internal/core/access"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

type adminService struct {
	accounts ports.AccountRepository
	items    ports.ItemRepository
	log      zerolog.Logger
}

// NewAdminService returns an AdminService implementation. Every operation
// requires the ADMIN role.
func NewAdminService(accounts ports.AccountRepository, items ports.ItemRepository, log zerolog.Logger) ports.AdminService {
	return &adminService{accounts: accounts, items: items, log: log}
}

func (s *adminService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	if _, err := access.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.accounts.List(ctx)
}

// DeleteAccount removes an account, then the items it posted. An
// administrator cannot delete their own account.
func (s *adminService) DeleteAccount(ctx context.Context, id string) error {
	caller, err := access.RequireRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if id == caller.AccountID {
		return fmt.Errorf("%w: cannot delete own account", domain.ErrInvalidInput)
	}

	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}

	// The account is gone at this point. A failed cleanup leaves its items
	// orphaned but still removable through DeleteItem.
	removed, err := s.items.DeleteByOwner(ctx, id)
	if err != nil {
		s.log.Error().Err(err).
			Str("account_id", id).
			Str("admin_id", caller.AccountID).
			Msg("account deleted but its items were not removed")
		return fmt.Errorf("delete account items: %w", err)
	}

	s.log.Info().
		Str("account_id", id).
		Str("admin_id", caller.AccountID).
		Int64("items_removed", removed).
		Msg("account deleted")
	return nil
}

func (s *adminService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	if _, err := access.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.items.List(ctx, ports.ItemFilter{})
}

func (s *adminService) DeleteItem(ctx context.Context, id string) error {
	caller, err := access.RequireRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("item_id", id).Str("admin_id", caller.AccountID).Msg("item deleted by admin")
	return nil
}

func (s *adminService) ListItemsByAccount(ctx context.Context, accountID string) ([]*domain.Item, error) {
	if _, err := access.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.items.List(ctx, ports.ItemFilter{PostedBy: accountID})
}
