package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

// TokenService issues and validates HS256-signed bearer tokens. Tokens carry
// only the subject identity and their validity window; no server-side state is
// kept, so expiry is the only way a token stops working.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token service: ttl must be positive, got %s", ttl)
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL reports the lifetime given to issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for identity valid from now until now+TTL.
func (s *TokenService) Issue(identity string) (string, time.Time, error) {
	if identity == "" {
		return "", time.Time{}, fmt.Errorf("issue token: %w", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   identity,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Validate verifies the signature and validity window of token and returns the
// identity it was issued for. The token is rejected once now >= exp. Every
// failure wraps domain.ErrInvalidToken; the joined cause is meant for logs only.
func (s *TokenService) Validate(token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	return claims.Subject, nil
}
