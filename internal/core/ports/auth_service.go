package ports

import (
	"context"
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// LoginResult bundles the signed token, its expiry, and the public user
// projection returned after a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.PublicUser
}

// AuthService defines session issuance and identity lookups.
type AuthService interface {
	// Login validates credentials and issues a signed session token.
	// Unknown email and wrong password both surface as
	// domain.ErrInvalidCredentials, never distinguished.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Register creates a new account. An empty role defaults to OPERADOR;
	// only an ADMIN caller may grant ADMIN.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// WhoAmI re-validates the claims' subject against the live store,
	// catching accounts deleted or re-roled after issuance.
	WhoAmI(ctx context.Context, userID string) (*domain.User, error)
}

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	// CallerRole is the role of the authenticated caller, or empty for the
	// public registration endpoint.
	CallerRole string
}
