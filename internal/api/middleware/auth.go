package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kiitfinder/lostfound-system/internal/api/metrics"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

// IdentityResolver looks up the account a validated token refers to.
type IdentityResolver interface {
	FindByIdentity(ctx context.Context, identity string) (*domain.Account, error)
}

// AuthConfig configures the authentication gate.
type AuthConfig struct {
	Tokens   ports.TokenService
	Accounts IdentityResolver
	// PublicPaths are path prefixes that skip token processing entirely.
	PublicPaths []string
	Log         zerolog.Logger
}

// Authenticate resolves the bearer token, if any, into a RequestIdentity on the
// request context. It never rejects a request: a missing or bad token leaves
// the request anonymous and access control decides later.
func Authenticate(cfg AuthConfig) echo.MiddlewareFunc {
	public := normalizePrefixes(cfg.PublicPaths)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if req.Method == http.MethodOptions || isPublic(req.URL.Path, public) {
				metrics.GateDecisionsTotal.WithLabelValues("public").Inc()
				return next(c)
			}
			if _, ok := domain.IdentityFromContext(req.Context()); ok {
				return next(c)
			}

			token, ok := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.GateDecisionsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			identity, err := cfg.Tokens.Validate(token)
			if err != nil {
				cfg.Log.Debug().Err(err).Str("path", req.URL.Path).Msg("bearer token rejected")
				metrics.GateDecisionsTotal.WithLabelValues("invalid_token").Inc()
				return next(c)
			}

			account, err := cfg.Accounts.FindByIdentity(req.Context(), identity)
			if err != nil {
				result := "lookup_error"
				if errors.Is(err, domain.ErrAccountNotFound) {
					result = "unknown_account"
				}
				cfg.Log.Debug().Err(err).Str("path", req.URL.Path).Msg("token subject not resolved")
				metrics.GateDecisionsTotal.WithLabelValues(result).Inc()
				return next(c)
			}

			ctx := domain.WithIdentity(req.Context(), domain.IdentityFromAccount(account))
			c.SetRequest(req.WithContext(ctx))
			metrics.GateDecisionsTotal.WithLabelValues("authenticated").Inc()
			return next(c)
		}
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func normalizePrefixes(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, strings.TrimSuffix(p, "/"))
	}
	return out
}

// isPublic matches whole path segments, so "/auth/login" does not cover
// "/auth/loginx".
func isPublic(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
