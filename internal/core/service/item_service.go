package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

type itemService struct {
	items       ports.ItemRepository
	maintenance ports.MaintenanceRepository
	audit       ports.AuditSink
	log         zerolog.Logger
}

// NewItemService returns an ItemService implementation.
func NewItemService(
	items ports.ItemRepository,
	maintenance ports.MaintenanceRepository,
	audit ports.AuditSink,
	log zerolog.Logger,
) ports.ItemService {
	return &itemService{items: items, maintenance: maintenance, audit: audit, log: log}
}

func (s *itemService) Create(ctx context.Context, actor ports.Actor, input ports.ItemInput) (*domain.Item, error) {
	if !domain.ValidItemStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	created, err := s.items.Create(ctx, &domain.Item{
		Nome:        input.Nome,
		Descricao:   input.Descricao,
		Localizacao: input.Localizacao,
		Status:      input.Status,
		CreatedAt:   now,
		CreatedBy:   actor.Name,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", created.ID).Str("created_by", actor.Name).Msg("item created")
	return created, nil
}

func (s *itemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.items.FindByID(ctx, id)
}

func (s *itemService) List(ctx context.Context) ([]*domain.Item, error) {
	return s.items.List(ctx)
}

func (s *itemService) Update(ctx context.Context, actor ports.Actor, id string, input ports.ItemInput) (*domain.Item, error) {
	if !domain.ValidItemStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Nome = input.Nome
	item.Descricao = input.Descricao
	item.Localizacao = input.Localizacao
	item.Status = input.Status
	item.UpdatedAt = time.Now().UTC()
	item.UpdatedBy = actor.Name

	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an item and cascades the deletion of its maintenance
// history. Restricted to ADMIN actors.
func (s *itemService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if _, err := s.items.FindByID(ctx, id); err != nil {
		return err
	}

	// History first: an item without history is recoverable, orphaned
	// history is not.
	if err := s.maintenance.DeleteByItem(ctx, id); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Enqueue(domain.AuditEntry{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    domain.AuditItemDeleted,
		TargetID:  id,
		At:        time.Now().UTC(),
	})
	s.log.Info().Str("item_id", id).Str("actor_id", actor.ID).Msg("item deleted")
	return nil
}
