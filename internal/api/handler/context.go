package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/middleware"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// ctxActor extracts the verified identity injected by the Auth middleware.
// Every mutating handler calls this first: a missing identity means the
// middleware did not run (or claims were incomplete) and the request is
// rejected before any role or ownership check.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxUserRole).(string)
	if id == "" || role == "" {
		return ports.Actor{}, domain.ErrMissingToken
	}

	name, _ := c.Get(middleware.CtxUserName).(string)
	return ports.Actor{ID: id, Name: name, Role: role}, nil
}
