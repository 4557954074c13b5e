package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/api/middleware"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// AuthHandler exposes login, registration, logout, and the current-user
// endpoint.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN OPERADOR"`
}

type registerResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// Login authenticates a user and returns a signed session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginLabel(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	// Cookie transport for the page guard; the JSON token serves API calls.
	c.SetCookie(sessionCookie(result.Token, result.ExpiresAt))

	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, User: result.User})
}

// Register creates a new user account. The public endpoint always grants
// OPERADOR; an authenticated ADMIN may grant ADMIN.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Role of the caller if a valid session accompanied the request; empty
	// for anonymous registration.
	callerRole, _ := c.Get(middleware.CtxUserRole).(string)

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		CallerRole: callerRole,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Message: "user created",
		User:    user.Public(),
	})
}

// Me returns the authenticated user, re-validated against the live store.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PublicUser
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.authService.WhoAmI(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Public())
}

// Logout clears the session cookie. Tokens are stateless, so the bearer
// copy remains valid until expiry; this only ends the cookie transport.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	expired := sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	c.SetCookie(expired)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// sessionCookie builds the token cookie aligned with the token's lifetime.
func sessionCookie(value string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func loginLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
