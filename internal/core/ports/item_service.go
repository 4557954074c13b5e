package ports

import (
	"context"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// ItemInput carries the fields of an item create/update request.
type ItemInput struct {
	Nome        string
	Descricao   string
	Localizacao string
	Status      domain.ItemStatus
}

// ItemService defines use-case operations for equipment items.
type ItemService interface {
	Create(ctx context.Context, actor Actor, input ItemInput) (*domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	Update(ctx context.Context, actor Actor, id string, input ItemInput) (*domain.Item, error)
	// Delete removes an item and its maintenance history. ADMIN only.
	Delete(ctx context.Context, actor Actor, id string) error
}
