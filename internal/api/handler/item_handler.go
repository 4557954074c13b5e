package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// ItemHandler exposes the equipment CRUD endpoints.
type ItemHandler struct {
	itemService ports.ItemService
}

func NewItemHandler(itemService ports.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

type itemRequest struct {
	Nome        string `json:"nome" validate:"required"`
	Descricao   string `json:"descricao" validate:"required"`
	Localizacao string `json:"localizacao" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

func (r itemRequest) input() ports.ItemInput {
	return ports.ItemInput{
		Nome:        r.Nome,
		Descricao:   r.Descricao,
		Localizacao: r.Localizacao,
		Status:      domain.ItemStatus(r.Status),
	}
}

// List returns all registered items.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Item
// @Failure      401  {object}  map[string]string
// @Router       /v1/items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.itemService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns a single item by id.
//
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Item id"
// @Success      200  {object}  domain.Item
// @Failure      404  {object}  map[string]string
// @Router       /v1/items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.itemService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create registers a new item.
//
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      itemRequest  true  "Item details"
// @Success      201   {object}  domain.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.Create(c.Request().Context(), actor, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update replaces the mutable fields of an item.
//
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Item id"
// @Param        body  body      itemRequest  true  "Item details"
// @Success      200   {object}  domain.Item
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.Update(c.Request().Context(), actor, c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes an item and its maintenance history. ADMIN only; the RBAC
// middleware enforces the role before this handler runs, the service
// enforces it again.
//
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Item id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.itemService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item deleted"})
}
