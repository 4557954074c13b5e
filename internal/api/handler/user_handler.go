package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// UserHandler exposes the admin-only user management endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// List returns all user accounts without password hashes.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PublicUser
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ChangeRole updates the role of another account. Self-targeting is
// rejected even for admins.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Target user id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangeRole(c.Request().Context(), actor, c.Param("id"), req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "role updated"})
}

// Delete removes another account. Self-targeting is rejected even for
// admins.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Target user id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}
