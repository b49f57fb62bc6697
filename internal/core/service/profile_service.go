package service

import (
	"context"

	"github.com/kiitfinder/lostfound-system/internal/core/access"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

type profileService struct {
	accounts ports.AccountRepository
}

// NewProfileService returns a ProfileService implementation.
func NewProfileService(accounts ports.AccountRepository) ports.ProfileService {
	return &profileService{accounts: accounts}
}

// Profile returns the caller's stored account.
func (s *profileService) Profile(ctx context.Context) (*domain.Account, error) {
	caller, err := access.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.accounts.FindByID(ctx, caller.AccountID)
}
