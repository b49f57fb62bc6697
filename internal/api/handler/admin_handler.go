package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

// AdminHandler exposes the ADMIN-only operations.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers handles GET /admin/users.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	accounts, err := h.service.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteUser handles DELETE /admin/users/:id.
//
// @Summary      Delete an account and its items
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteAccount(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// ListItems handles GET /admin/items.
//
// @Summary      List all items
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   itemResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/items [get]
func (h *AdminHandler) ListItems(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponses(items))
}

// DeleteItem handles DELETE /admin/items/:id.
//
// @Summary      Delete any item
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/items/{id} [delete]
func (h *AdminHandler) DeleteItem(c echo.Context) error {
	if err := h.service.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Item deleted successfully"})
}

// ListUserItems handles GET /admin/users/:id/items.
//
// @Summary      List an account's items
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {array}   itemResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id}/items [get]
func (h *AdminHandler) ListUserItems(c echo.Context) error {
	items, err := h.service.ListItemsByAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponses(items))
}
