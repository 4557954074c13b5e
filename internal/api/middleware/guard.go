package middleware

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/token"
)

// GuardConfig configures the page-route guard.
type GuardConfig struct {
	// Policy maps a path prefix to the minimum role required beneath it.
	// An empty role means "any authenticated user". Matching is by longest
	// prefix; paths matching no prefix are unrestricted.
	Policy map[string]string
	// LoginPath receives redirects for missing or unverifiable tokens.
	LoginPath string
	// FallbackPath receives redirects for authenticated users whose role
	// is insufficient for the requested page.
	FallbackPath string
	// CookieName is the cookie carrying the session token.
	CookieName string
}

// Guard intercepts page requests before they reach their handler. Outcomes
// are exactly four: no token → login, invalid token → login, valid token
// with insufficient role → fallback page, otherwise pass through unchanged.
// Downstream handlers needing identity must re-verify via Auth; the guard
// attaches nothing to the request.
func Guard(codec *token.Codec, cfg GuardConfig) echo.MiddlewareFunc {
	// Longest prefix wins, so evaluate prefixes longest-first.
	prefixes := make([]string, 0, len(cfg.Policy))
	for p := range cfg.Policy {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			required, protected := requiredRole(c.Request().URL.Path, prefixes, cfg.Policy)
			if !protected {
				return next(c)
			}

			cookie, err := c.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				metrics.GuardDecisionsTotal.WithLabelValues("no_token").Inc()
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}

			claims, err := codec.Verify(cookie.Value)
			if err != nil {
				metrics.GuardDecisionsTotal.WithLabelValues("invalid_token").Inc()
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}

			if required != "" && roleRank(claims.Role) < roleRank(required) {
				metrics.GuardDecisionsTotal.WithLabelValues("role_insufficient").Inc()
				return c.Redirect(http.StatusFound, cfg.FallbackPath)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

// roleRank orders roles for the minimum-role comparison: a policy entry
// admits the named role and everything above it. Unknown roles rank below
// everything and are always insufficient.
func roleRank(role string) int {
	switch role {
	case domain.RoleAdmin:
		return 2
	case domain.RoleOperador:
		return 1
	}
	return 0
}

// requiredRole resolves the policy entry for path using longest-prefix
// matching. The second return reports whether the path is protected at all.
func requiredRole(path string, prefixes []string, policy map[string]string) (string, bool) {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return policy[p], true
		}
	}
	return "", false
}

// DefaultGuardConfig is the policy table for the maintenance dashboard:
// every dashboard page needs a session, the user administration pages
// additionally need ADMIN.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Policy: map[string]string{
			"/home":            "",
			"/dashboard":       "",
			"/dashboard/users": domain.RoleAdmin,
		},
		LoginPath:    "/login",
		FallbackPath: "/dashboard/maintenance",
		CookieName:   SessionCookieName,
	}
}

// SessionCookieName is the cookie used for the page-routing transport of
// the session token. Kept in sync with the login handler.
const SessionCookieName = "token"
