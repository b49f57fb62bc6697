package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kiitfinder/lostfound-system/internal/api/metrics"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorKind struct {
	status int
	code   string
	msg    string
}

// domainErrors maps each client-visible error kind to a stable status/code
// pair. An entry with an empty msg echoes the error text, which for
// ErrInvalidInput only carries validation detail.
var domainErrors = []struct {
	err  error
	kind errorKind
}{
	{domain.ErrInvalidInput, errorKind{http.StatusBadRequest, "INVALID_INPUT", ""}},
	{domain.ErrDuplicateIdentity, errorKind{http.StatusBadRequest, "DUPLICATE_IDENTITY", "an account with this email already exists"}},
	{domain.ErrInvalidCredentials, errorKind{http.StatusBadRequest, "INVALID_CREDENTIALS", "invalid email or password"}},
	{domain.ErrAlreadyExists, errorKind{http.StatusBadRequest, "ALREADY_EXISTS", "admin user already exists"}},
	{domain.ErrTooManyAttempts, errorKind{http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "too many failed login attempts, try again later"}},
	{domain.ErrInvalidToken, errorKind{http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required"}},
	{domain.ErrUnauthenticated, errorKind{http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required"}},
	{domain.ErrForbidden, errorKind{http.StatusForbidden, "FORBIDDEN", "access forbidden"}},
	{domain.ErrAccountNotFound, errorKind{http.StatusNotFound, "NOT_FOUND", "user not found"}},
	{domain.ErrItemNotFound, errorKind{http.StatusNotFound, "NOT_FOUND", "item not found"}},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and error code.
//   - Counts and audits access-control denials.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<KIND>"}.
func NewHTTPErrorHandler(log zerolog.Logger, audit ports.AuditRecorder) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		kind := resolveError(err, log, c)
		recordDenial(err, kind, audit, c)

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(kind.status)
			return
		}
		_ = c.JSON(kind.status, errorResponse{Error: kind.msg, Code: kind.code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) errorKind {
	// Echo's own errors (router 404/405, rate limiter, body limits).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return errorKind{status: he.Code, code: statusCode(he.Code), msg: fmt.Sprintf("%v", he.Message)}
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			kind := m.kind
			if kind.msg == "" {
				kind.msg = err.Error()
			}
			return kind
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", domain.RequestIDFromContext(c.Request().Context())).
		Msg("unhandled error")

	return errorKind{status: http.StatusInternalServerError, code: "INTERNAL", msg: "internal server error"}
}

func recordDenial(err error, kind errorKind, audit ports.AuditRecorder, c echo.Context) {
	switch kind.code {
	case "UNAUTHENTICATED":
		metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
	case "FORBIDDEN":
		metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
		if audit == nil || !errors.Is(err, domain.ErrForbidden) {
			return
		}
		ctx := c.Request().Context()
		id, _ := domain.IdentityFromContext(ctx)
		audit.Record(domain.SecurityEvent{
			Kind:      domain.EventAccessDenied,
			Identity:  id.Identity,
			Outcome:   domain.OutcomeFailure,
			Detail:    c.Request().Method + " " + c.Path(),
			RequestID: domain.RequestIDFromContext(ctx),
			At:        time.Now().UTC(),
		})
	}
}

// statusCode derives an error code from an HTTP status, e.g. 405 ->
// METHOD_NOT_ALLOWED.
func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_INPUT"
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}
