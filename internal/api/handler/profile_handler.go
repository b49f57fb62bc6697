package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /users/profile.
//
// @Summary      Current account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	account, err := h.service.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}
