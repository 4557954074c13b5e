package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// RBAC restricts a route group to the given roles. It must run after Auth;
// a request without an injected role fails closed as forbidden.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxUserRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
