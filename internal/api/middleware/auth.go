package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/token"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID    = "user_id"
	CtxUserName  = "user_name"
	CtxUserEmail = "user_email"
	CtxUserRole  = "user_role"
)

// Auth verifies the bearer token on API requests and injects the verified
// claims into the echo context. Failures are reported with a distinct kind
// per the token error taxonomy; all of them map to 401.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request())
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return err
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyLabel(err)).Inc()
				return err
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUserName, claims.Name)
			c.Set(CtxUserEmail, claims.Email)
			c.Set(CtxUserRole, claims.Role)

			return next(c)
		}
	}
}

// AuthOptional verifies the bearer token when one is present and injects
// the claims like Auth; requests without an Authorization header pass
// through anonymously. A token that is present but unverifiable is still
// rejected: callers either identify themselves correctly or not at all.
// Used on registration, where an authenticated ADMIN may grant roles a
// public caller cannot.
func AuthOptional(codec *token.Codec) echo.MiddlewareFunc {
	required := Auth(codec)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			return required(next)(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header. An absent
// header and a non-bearer scheme are both reported as missing.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrMissingToken
	}
	return parts[1], nil
}

func verifyLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
