package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

type maintenanceService struct {
	maintenance ports.MaintenanceRepository
	items       ports.ItemRepository
	log         zerolog.Logger
}

// NewMaintenanceService returns a MaintenanceService implementation.
func NewMaintenanceService(
	maintenance ports.MaintenanceRepository,
	items ports.ItemRepository,
	log zerolog.Logger,
) ports.MaintenanceService {
	return &maintenanceService{maintenance: maintenance, items: items, log: log}
}

// Log records a maintenance event. The referenced item must exist; on
// success the item returns to "Em Operação" with its last maintenance
// date updated.
func (s *maintenanceService) Log(ctx context.Context, actor ports.Actor, input ports.MaintenanceInput) (*domain.Maintenance, error) {
	if !domain.ValidMaintenanceType(input.Type) {
		return nil, domain.ErrInvalidMaintenance
	}

	// 1. The item must exist before anything is written.
	if _, err := s.items.FindByID(ctx, input.ItemID); err != nil {
		return nil, err
	}

	// 2. Persist the record.
	created, err := s.maintenance.Create(ctx, &domain.Maintenance{
		ItemID:        input.ItemID,
		Type:          input.Type,
		Description:   input.Description,
		PerformedAt:   input.PerformedAt,
		Technician:    input.Technician,
		NextScheduled: input.NextScheduled,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     actor.Name,
	})
	if err != nil {
		return nil, err
	}

	// 3. Flip the item back to operational.
	if err := s.items.SetMaintained(ctx, input.ItemID, input.PerformedAt); err != nil {
		s.log.Error().Err(err).Str("item_id", input.ItemID).Msg("failed to update item after maintenance")
		return nil, err
	}

	s.log.Info().
		Str("item_id", input.ItemID).
		Str("type", string(input.Type)).
		Str("technician", input.Technician).
		Msg("maintenance logged")

	return created, nil
}

func (s *maintenanceService) List(ctx context.Context) ([]*domain.Maintenance, error) {
	return s.maintenance.List(ctx)
}

// HistoryByItem returns all maintenance records for one item. The item must
// exist; an unknown id surfaces as domain.ErrItemNotFound rather than an
// empty list.
func (s *maintenanceService) HistoryByItem(ctx context.Context, itemID string) ([]*domain.Maintenance, error) {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.maintenance.ListByItem(ctx, itemID)
}
