package ports

import "context"

// CredentialService registers accounts and exchanges credentials for tokens.
type CredentialService interface {
	Register(ctx context.Context, identity, displayName, secret string) (string, error)
	Login(ctx context.Context, identity, secret string) (string, error)
	BootstrapAdmin(ctx context.Context) (string, error)
}
