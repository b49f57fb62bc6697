package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kiitfinder/lostfound-system/internal/api/metrics"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

// ItemHandler handles HTTP requests for lost and found items.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List handles GET /items.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        status    query     string  false  "lost, found, claimed or resolved"
// @Param        category  query     string  false  "Category"
// @Param        location  query     string  false  "Case-insensitive location substring"
// @Success      200       {array}   itemResponse
// @Failure      400       {object}  errorResponse
// @Router       /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), ports.ListItemsInput{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponses(items))
}

// Get handles GET /items/:id.
//
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  itemResponse
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Mine handles GET /items/mine.
//
// @Summary      List the caller's items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   itemResponse
// @Failure      401  {object}  errorResponse
// @Router       /items/mine [get]
func (h *ItemHandler) Mine(c echo.Context) error {
	items, err := h.service.ListMine(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponses(items))
}

// Create handles POST /items.
//
// @Summary      Report an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      itemRequest  true  "Item details"
// @Success      201   {object}  itemResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	var req itemRequest
	if err := bindAuthenticated(c, &req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), toItemInput(req))
	if err != nil {
		return err
	}

	metrics.ItemsCreatedTotal.WithLabelValues(string(item.Status)).Inc()
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// Update handles PUT /items/:id.
//
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Item ID"
// @Param        body  body      itemRequest  true  "Item details"
// @Success      200   {object}  itemResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	var req itemRequest
	if err := bindAuthenticated(c, &req); err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), c.Param("id"), toItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// UpdateStatus handles PATCH /items/:id/status.
//
// @Summary      Change an item's status
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Item ID"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  itemResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /items/{id}/status [patch]
func (h *ItemHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAuthenticated(c, &req); err != nil {
		return err
	}

	item, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete handles DELETE /items/:id.
//
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Item deleted successfully"})
}

func toItemInput(req itemRequest) ports.ItemInput {
	return ports.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Status:      req.Status,
		Reward:      req.Reward,
		ImageURL:    req.ImageURL,
	}
}
