package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/token"
)

// runGuard sends a page request through the Guard and returns the recorder
// plus whether the wrapped handler ran.
func runGuard(t *testing.T, codec *token.Codec, path, cookieValue string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var reached bool
	handler := Guard(codec, DefaultGuardConfig())(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	return rec, reached
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func TestGuard_NoCookieRedirectsToLogin(t *testing.T) {
	codec := newTestCodec(t)

	rec, reached := runGuard(t, codec, "/dashboard", "")
	if reached {
		t.Fatalf("handler must not run without a session")
	}
	assertRedirect(t, rec, "/login")
}

func TestGuard_InvalidTokenRedirectsToLogin(t *testing.T) {
	codec := newTestCodec(t)

	rec, reached := runGuard(t, codec, "/dashboard", "garbage")
	if reached {
		t.Fatalf("handler must not run with an unverifiable token")
	}
	assertRedirect(t, rec, "/login")
}

func TestGuard_InsufficientRoleRedirectsToFallback(t *testing.T) {
	codec := newTestCodec(t)
	raw := issueToken(t, codec, domain.RoleOperador)

	rec, reached := runGuard(t, codec, "/dashboard/users", raw)
	if reached {
		t.Fatalf("operador must not reach the user administration pages")
	}
	assertRedirect(t, rec, "/dashboard/maintenance")
}

func TestGuard_AdminAllowed(t *testing.T) {
	codec := newTestCodec(t)
	raw := issueToken(t, codec, domain.RoleAdmin)

	rec, reached := runGuard(t, codec, "/dashboard/users", raw)
	if !reached {
		t.Fatalf("admin must reach the page, got %d", rec.Code)
	}
}

func TestGuard_AuthenticatedUserOnOpenDashboard(t *testing.T) {
	codec := newTestCodec(t)
	raw := issueToken(t, codec, domain.RoleOperador)

	_, reached := runGuard(t, codec, "/dashboard/maintenance", raw)
	if !reached {
		t.Fatalf("any authenticated user must reach /dashboard/maintenance")
	}
}

func TestGuard_UnprotectedPathPassesThrough(t *testing.T) {
	codec := newTestCodec(t)

	_, reached := runGuard(t, codec, "/login", "")
	if !reached {
		t.Fatalf("unprotected path must pass through untouched")
	}
}

// The user administration entry must win over the broader dashboard entry:
// /dashboard/users requires ADMIN even though /dashboard alone does not.
func TestGuard_LongestPrefixWins(t *testing.T) {
	codec := newTestCodec(t)
	raw := issueToken(t, codec, domain.RoleOperador)

	rec, reached := runGuard(t, codec, "/dashboard/users/7/edit", raw)
	if reached {
		t.Fatalf("nested user admin page must inherit the ADMIN requirement")
	}
	assertRedirect(t, rec, "/dashboard/maintenance")
}

// A policy entry names the minimum role, not an exact one: ADMIN must
// satisfy an OPERADOR requirement.
func TestGuard_HigherRoleSatisfiesMinimum(t *testing.T) {
	codec := newTestCodec(t)
	raw := issueToken(t, codec, domain.RoleAdmin)

	cfg := GuardConfig{
		Policy:       map[string]string{"/dashboard/maintenance": domain.RoleOperador},
		LoginPath:    "/login",
		FallbackPath: "/dashboard",
		CookieName:   SessionCookieName,
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/maintenance", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: raw})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var reached bool
	handler := Guard(codec, cfg)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	if !reached {
		t.Fatalf("admin must satisfy an OPERADOR minimum, got %d", rec.Code)
	}
}

// A path that merely shares the prefix string without a path boundary is
// not covered by the entry.
func TestGuard_PrefixNeedsBoundary(t *testing.T) {
	codec := newTestCodec(t)

	_, reached := runGuard(t, codec, "/dashboard-public", "")
	if !reached {
		t.Fatalf("/dashboard-public is outside the policy and must pass")
	}
}
