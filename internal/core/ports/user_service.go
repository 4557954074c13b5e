package ports

import (
	"context"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// Actor identifies the authenticated caller of a privileged operation.
type Actor struct {
	ID   string
	Name string
	Role string
}

// UserService defines administrative operations on accounts. Every
// operation checks, in order: role sufficiency, then the self-protection
// invariant, then target existence rules as documented per method.
type UserService interface {
	List(ctx context.Context, actor Actor) ([]domain.PublicUser, error)
	// ChangeRole sets the target's role. ADMIN only; the actor can never
	// target their own id (domain.ErrSelfModification).
	ChangeRole(ctx context.Context, actor Actor, targetID, role string) error
	// Delete removes the target account. Same restrictions as ChangeRole.
	Delete(ctx context.Context, actor Actor, targetID string) error
}
