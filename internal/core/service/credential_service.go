package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

// dummySecret is hashed once at construction so that logins for unknown
// identities spend the same work as logins with a wrong password.
const dummySecret = "lostfound-dummy-secret-for-unknown-identities"

// AdminAccount holds the configured bootstrap administrator.
type AdminAccount struct {
	Identity    string
	DisplayName string
	Secret      string
}

// CredentialService registers accounts, exchanges credentials for tokens and
// creates the bootstrap administrator.
type CredentialService struct {
	accounts    ports.AccountRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenService
	limiter     ports.AttemptLimiter
	audit       ports.AuditRecorder
	admin       AdminAccount
	dummyDigest string
	log         zerolog.Logger
}

// NewCredentialService returns a CredentialService.
func NewCredentialService(
	accounts ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	limiter ports.AttemptLimiter,
	audit ports.AuditRecorder,
	admin AdminAccount,
	log zerolog.Logger,
) *CredentialService {
	dummy, err := hasher.Hash(dummySecret)
	if err != nil {
		log.Warn().Err(err).Msg("failed to prepare dummy digest")
	}
	return &CredentialService{
		accounts:    accounts,
		hasher:      hasher,
		tokens:      tokens,
		limiter:     limiter,
		audit:       audit,
		admin:       admin,
		dummyDigest: dummy,
		log:         log,
	}
}

// Register creates a USER account and returns a token for it.
func (s *CredentialService) Register(ctx context.Context, identity, displayName, secret string) (string, error) {
	identity = domain.NormalizeIdentity(identity)
	displayName = strings.TrimSpace(displayName)
	if identity == "" || displayName == "" || secret == "" {
		return "", domain.ErrInvalidInput
	}

	_, err := s.accounts.FindByIdentity(ctx, identity)
	switch {
	case err == nil:
		s.record(ctx, domain.EventRegister, identity, domain.OutcomeConflict, "")
		return "", domain.ErrDuplicateIdentity
	case !errors.Is(err, domain.ErrAccountNotFound):
		return "", fmt.Errorf("register: %w", err)
	}

	account, err := s.createAccount(ctx, identity, displayName, secret, domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			s.record(ctx, domain.EventRegister, identity, domain.OutcomeConflict, "")
			return "", domain.ErrDuplicateIdentity
		}
		return "", fmt.Errorf("register: %w", err)
	}

	token, _, err := s.tokens.Issue(account.Identity)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	s.record(ctx, domain.EventRegister, identity, domain.OutcomeSuccess, "")
	s.log.Info().Str("account_id", account.ID).Msg("account registered")
	return token, nil
}

// Login returns a fresh token when secret matches the stored digest. Unknown
// identities and wrong secrets produce the same error.
func (s *CredentialService) Login(ctx context.Context, identity, secret string) (string, error) {
	identity = domain.NormalizeIdentity(identity)
	if identity == "" || secret == "" {
		return "", domain.ErrInvalidCredentials
	}

	blocked, err := s.limiter.Blocked(ctx, identity)
	if err != nil {
		s.log.Warn().Err(err).Msg("attempt limiter check failed, continuing")
	} else if blocked {
		s.record(ctx, domain.EventLogin, identity, domain.OutcomeBlocked, "")
		return "", domain.ErrTooManyAttempts
	}

	account, err := s.accounts.FindByIdentity(ctx, identity)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return "", fmt.Errorf("login: %w", err)
	}

	digest := s.dummyDigest
	if account != nil {
		digest = account.SecretDigest
	}
	matched := s.hasher.Verify(secret, digest)

	if account == nil || !matched {
		if err := s.limiter.RecordFailure(ctx, identity); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
		s.record(ctx, domain.EventLogin, identity, domain.OutcomeFailure, "")
		return "", domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, identity); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login attempts")
	}

	token, _, err := s.tokens.Issue(account.Identity)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	s.record(ctx, domain.EventLogin, identity, domain.OutcomeSuccess, "")
	return token, nil
}

// BootstrapAdmin creates the configured ADMIN account. It succeeds at most once
// per configured identity.
func (s *CredentialService) BootstrapAdmin(ctx context.Context) (string, error) {
	identity := domain.NormalizeIdentity(s.admin.Identity)
	if identity == "" || s.admin.Secret == "" {
		return "", errors.New("bootstrap admin: admin credentials not configured")
	}

	_, err := s.accounts.FindByIdentity(ctx, identity)
	switch {
	case err == nil:
		s.record(ctx, domain.EventBootstrapAdmin, identity, domain.OutcomeConflict, "")
		return "", domain.ErrAlreadyExists
	case !errors.Is(err, domain.ErrAccountNotFound):
		return "", fmt.Errorf("bootstrap admin: %w", err)
	}

	name := strings.TrimSpace(s.admin.DisplayName)
	if name == "" {
		name = "Administrator"
	}

	account, err := s.createAccount(ctx, identity, name, s.admin.Secret, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			s.record(ctx, domain.EventBootstrapAdmin, identity, domain.OutcomeConflict, "")
			return "", domain.ErrAlreadyExists
		}
		return "", fmt.Errorf("bootstrap admin: %w", err)
	}

	token, _, err := s.tokens.Issue(account.Identity)
	if err != nil {
		return "", fmt.Errorf("bootstrap admin: %w", err)
	}

	s.record(ctx, domain.EventBootstrapAdmin, identity, domain.OutcomeSuccess, "")
	s.log.Info().Str("account_id", account.ID).Msg("admin account bootstrapped")
	return token, nil
}

func (s *CredentialService) createAccount(ctx context.Context, identity, name, secret string, role domain.Role) (*domain.Account, error) {
	digest, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	now := time.Now().UTC()
	return s.accounts.Create(ctx, &domain.Account{
		DisplayName:  name,
		Identity:     identity,
		SecretDigest: digest,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *CredentialService) record(ctx context.Context, kind domain.SecurityEventKind, identity, outcome, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.SecurityEvent{
		Kind:      kind,
		Identity:  identity,
		Outcome:   outcome,
		Detail:    detail,
		RequestID: domain.RequestIDFromContext(ctx),
		At:        time.Now().UTC(),
	})
}
