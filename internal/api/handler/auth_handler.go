package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kiitfinder/lostfound-system/internal/api/metrics"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

type AuthHandler struct {
	credentials ports.CredentialService
}

func NewAuthHandler(credentials ports.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

// Register creates a new USER account and returns a token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid_input").Inc()
		return err
	}

	token, err := h.credentials.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("register", authOutcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Message: "User registered successfully", Token: token})
}

// Login exchanges credentials for a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_input").Inc()
		return err
	}

	token, err := h.credentials.Login(c.Request().Context(), req.Email, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("login", authOutcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Message: "Login successful", Token: token})
}

// BootstrapAdmin creates the configured administrator account once.
//
// @Summary      Create the initial admin account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/bootstrap-admin [post]
func (h *AuthHandler) BootstrapAdmin(c echo.Context) error {
	_, err := h.credentials.BootstrapAdmin(c.Request().Context())
	metrics.AuthAttemptsTotal.WithLabelValues("bootstrap_admin", authOutcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Admin user created successfully"})
}

func authOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrDuplicateIdentity), errors.Is(err, domain.ErrAlreadyExists):
		return "duplicate"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "blocked"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
