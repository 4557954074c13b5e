package ports

import (
	"context"
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// ItemRepository defines persistence operations for equipment items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
	// SetMaintained flips the item back to "Em Operação" and stamps the
	// last maintenance date after a maintenance event is logged.
	SetMaintained(ctx context.Context, id string, performedAt time.Time) error
}
