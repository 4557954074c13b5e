package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Kind is
// a stable machine-readable discriminator; Error is the human message.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to deterministic HTTP status codes
//     and stable kinds.
//   - Logs unexpected errors internally without leaking details to the
//     client.
//   - Renders a consistent JSON envelope: {"error": <msg>, "kind": <kind>}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, Kind: kind})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, "", fmt.Sprintf("%v", he.Message)
	}

	// Authentication failures → 401, each with its own kind so clients and
	// tests can tell them apart even though the UI treats them the same.
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, "missing_token", "missing authentication token"
	case errors.Is(err, domain.ErrMalformedToken):
		return http.StatusUnauthorized, "malformed_token", "malformed authentication token"
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized, "invalid_signature", "invalid token"
	case errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized, "expired_token", "token expired"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too_many_attempts", "too many login attempts, try again later"
	}

	// Authorization and entity failures.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden", "access forbidden"
	case errors.Is(err, domain.ErrSelfModification):
		return http.StatusBadRequest, "self_modification_denied", "cannot modify your own account"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "invalid_role", "invalid role"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid_status", "invalid item status"
	case errors.Is(err, domain.ErrInvalidMaintenance):
		return http.StatusBadRequest, "invalid_maintenance_type", "invalid maintenance type"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found", "user not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "item_not_found", "item not found"
	case errors.Is(err, domain.ErrMaintenanceNotFound):
		return http.StatusNotFound, "maintenance_not_found", "maintenance record not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "email_taken", "user already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal_error", "internal server error"
}
