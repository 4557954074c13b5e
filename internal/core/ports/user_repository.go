package ports

import (
	"context"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// The auth core depends only on this interface; implementations own
// per-record consistency guarantees.
type UserRepository interface {
	// FindByEmail looks up a user by normalised (lowercase) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
}
