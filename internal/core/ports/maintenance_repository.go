package ports

import (
	"context"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// MaintenanceRepository defines persistence operations for maintenance records.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) (*domain.Maintenance, error)
	List(ctx context.Context) ([]*domain.Maintenance, error)
	ListByItem(ctx context.Context, itemID string) ([]*domain.Maintenance, error)
	// DeleteByItem removes all records for an item; used when an item is
	// deleted so its history does not orphan.
	DeleteByItem(ctx context.Context, itemID string) error
}
