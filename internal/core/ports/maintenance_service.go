package ports

import (
	"context"
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// MaintenanceInput carries the fields needed to log a maintenance event.
type MaintenanceInput struct {
	ItemID        string
	Type          domain.MaintenanceType
	Description   string
	PerformedAt   time.Time
	Technician    string
	NextScheduled *time.Time
}

// MaintenanceService defines use-case operations for maintenance records.
type MaintenanceService interface {
	// Log records a maintenance event against an existing item and returns
	// the item to "Em Operação".
	Log(ctx context.Context, actor Actor, input MaintenanceInput) (*domain.Maintenance, error)
	List(ctx context.Context) ([]*domain.Maintenance, error)
	HistoryByItem(ctx context.Context, itemID string) ([]*domain.Maintenance, error)
}
