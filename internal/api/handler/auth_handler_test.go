package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/api"
	"github.com/maintrack/maintenance-system/internal/api/handler"
	"github.com/maintrack/maintenance-system/internal/api/middleware"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
	"github.com/maintrack/maintenance-system/internal/core/token"
)

// stubAuthService backs the handler tests with a single in-memory account.
type stubAuthService struct {
	user     *domain.User
	password string
	codec    *token.Codec
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.LoginResult, error) {
	if s.user == nil || domain.NormalizeEmail(email) != s.user.Email || password != s.password {
		return nil, domain.ErrInvalidCredentials
	}
	raw, expiresAt, err := s.codec.Issue(s.user)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: raw, ExpiresAt: expiresAt, User: s.user.Public()}, nil
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	if s.user != nil && domain.NormalizeEmail(input.Email) == s.user.Email {
		return nil, domain.ErrUserExists
	}
	role := input.Role
	if role == "" || (role == domain.RoleAdmin && input.CallerRole != domain.RoleAdmin) {
		role = domain.RoleOperador
	}
	return &domain.User{ID: "2", Name: input.Name, Email: domain.NormalizeEmail(input.Email), Role: role}, nil
}

func (s *stubAuthService) WhoAmI(_ context.Context, userID string) (*domain.User, error) {
	if s.user == nil || s.user.ID != userID {
		return nil, domain.ErrUserNotFound
	}
	return s.user, nil
}

// newAuthTestServer wires the auth routes the way the router does: validator,
// central error handler, Auth middleware on /me.
func newAuthTestServer(t *testing.T) (*echo.Echo, *stubAuthService) {
	t.Helper()

	codec, err := token.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	svc := &stubAuthService{
		user: &domain.User{
			ID:    "1",
			Name:  "Alice",
			Email: "alice@x.com",
			Role:  domain.RoleAdmin,
		},
		password: "secret123",
		codec:    codec,
	}

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewAuthHandler(svc)
	e.POST("/v1/auth/login", h.Login)
	e.POST("/v1/auth/register", h.Register, middleware.AuthOptional(codec))
	e.POST("/v1/auth/logout", h.Logout)
	e.GET("/v1/auth/me", h.Me, middleware.Auth(codec))

	return e, svc
}

func doJSON(e *echo.Echo, method, path, body, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return body.Error, body.Kind
}

func TestLogin_Success(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/login",
		`{"email":"alice@x.com","password":"secret123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string            `json:"token"`
		User  domain.PublicUser `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Token == "" {
		t.Fatalf("expected a token")
	}
	if body.User.Email != "alice@x.com" || body.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", body.User)
	}

	// The session cookie must carry the token with the hardened attributes.
	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookieName {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("session cookie not set")
	}
	if session.Value != body.Token {
		t.Fatalf("cookie value differs from response token")
	}
	if !session.HttpOnly || session.Path != "/" || session.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie attributes wrong: %+v", session)
	}
}

func TestLogin_FailuresIndistinguishable(t *testing.T) {
	e, _ := newAuthTestServer(t)

	wrongPass := doJSON(e, http.MethodPost, "/v1/auth/login",
		`{"email":"alice@x.com","password":"wrong"}`, "")
	unknown := doJSON(e, http.MethodPost, "/v1/auth/login",
		`{"email":"ghost@x.com","password":"whatever"}`, "")

	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("failure bodies differ: %s vs %s", wrongPass.Body.String(), unknown.Body.String())
	}
	_, kind := decodeError(t, wrongPass)
	if kind != "invalid_credentials" {
		t.Fatalf("expected kind invalid_credentials, got %s", kind)
	}
}

func TestLogin_ValidationErrors(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"not-an-email"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegister_PublicDefaultsToOperador(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register",
		`{"name":"Bob","email":"bob@x.com","password":"pass123","role":"ADMIN"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		User domain.PublicUser `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User.Role != domain.RoleOperador {
		t.Fatalf("anonymous ADMIN request must be downgraded, got %s", body.User.Role)
	}
}

// An ADMIN sending their bearer token with the request must be able to
// grant ADMIN through the route as wired.
func TestRegister_AdminCallerGrantsAdmin(t *testing.T) {
	e, svc := newAuthTestServer(t)

	raw, _, err := svc.codec.Issue(svc.user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec := doJSON(e, http.MethodPost, "/v1/auth/register",
		`{"name":"Carol","email":"carol@x.com","password":"pass123","role":"ADMIN"}`, "Bearer "+raw)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		User domain.PublicUser `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User.Role != domain.RoleAdmin {
		t.Fatalf("admin caller must be able to grant ADMIN, got %s", body.User.Role)
	}
}

// A bad token on register is rejected outright rather than treated as an
// anonymous request.
func TestRegister_InvalidTokenRejected(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register",
		`{"name":"Carol","email":"carol@x.com","password":"pass123"}`, "Bearer junk")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if _, kind := decodeError(t, rec); kind != "malformed_token" {
		t.Fatalf("expected kind malformed_token, got %s", kind)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register",
		`{"name":"Alice","email":"alice@x.com","password":"pass123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if _, kind := decodeError(t, rec); kind != "email_taken" {
		t.Fatalf("expected kind email_taken, got %s", kind)
	}
}

func TestMe_WithoutToken(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if _, kind := decodeError(t, rec); kind != "missing_token" {
		t.Fatalf("expected kind missing_token, got %s", kind)
	}
}

func TestMe_MalformedToken(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/auth/me", "", "Bearer junk")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if _, kind := decodeError(t, rec); kind != "malformed_token" {
		t.Fatalf("expected kind malformed_token, got %s", kind)
	}
}

func TestMe_ValidToken(t *testing.T) {
	e, svc := newAuthTestServer(t)

	raw, _, err := svc.codec.Issue(svc.user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec := doJSON(e, http.MethodGet, "/v1/auth/me", "", "Bearer "+raw)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var user domain.PublicUser
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.ID != "1" || user.Email != "alice@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

// A deleted account with a still-valid token must surface as not found.
func TestMe_DeletedAccount(t *testing.T) {
	e, svc := newAuthTestServer(t)

	raw, _, err := svc.codec.Issue(svc.user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	svc.user = nil

	rec := doJSON(e, http.MethodGet, "/v1/auth/me", "", "Bearer "+raw)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if _, kind := decodeError(t, rec); kind != "user_not_found" {
		t.Fatalf("expected kind user_not_found, got %s", kind)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/logout", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			cleared = ck
		}
	}
	if cleared == nil {
		t.Fatalf("expected an expiring cookie")
	}
	if cleared.MaxAge != -1 || cleared.Value != "" {
		t.Fatalf("cookie not cleared: %+v", cleared)
	}
}
