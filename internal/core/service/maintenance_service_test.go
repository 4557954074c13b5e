package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

type stubItemRepo struct {
	mu     sync.Mutex
	items  map[string]*domain.Item
	nextID int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*domain.Item), nextID: 1}
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *item
	clone.ID = strconv.Itoa(r.nextID)
	r.nextID++
	stored := clone
	r.items[clone.ID] = &stored
	return &clone, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[id]; ok {
		clone := *it
		return &clone, nil
	}
	return nil, domain.ErrItemNotFound
}

func (r *stubItemRepo) List(_ context.Context) ([]*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Item, 0, len(r.items))
	for _, it := range r.items {
		clone := *it
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return nil, domain.ErrItemNotFound
	}
	stored := *item
	r.items[item.ID] = &stored
	clone := *item
	return &clone, nil
}

func (r *stubItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) SetMaintained(_ context.Context, id string, performedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.Status = domain.StatusOperacao
	it.LastMaintenance = performedAt
	return nil
}

type stubMaintenanceRepo struct {
	mu      sync.Mutex
	records []*domain.Maintenance
	nextID  int
}

func newStubMaintenanceRepo() *stubMaintenanceRepo {
	return &stubMaintenanceRepo{nextID: 1}
}

func (r *stubMaintenanceRepo) Create(_ context.Context, m *domain.Maintenance) (*domain.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *m
	clone.ID = strconv.Itoa(r.nextID)
	r.nextID++
	stored := clone
	r.records = append(r.records, &stored)
	return &clone, nil
}

func (r *stubMaintenanceRepo) List(_ context.Context) ([]*domain.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Maintenance(nil), r.records...), nil
}

func (r *stubMaintenanceRepo) ListByItem(_ context.Context, itemID string) ([]*domain.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Maintenance
	for _, m := range r.records {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMaintenanceRepo) DeleteByItem(_ context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, m := range r.records {
		if m.ItemID != itemID {
			kept = append(kept, m)
		}
	}
	r.records = kept
	return nil
}

func operadorActor() ports.Actor {
	return ports.Actor{ID: "7", Name: "Op", Role: domain.RoleOperador}
}

func TestMaintenanceService_Log_FlipsItemStatus(t *testing.T) {
	items := newStubItemRepo()
	records := newStubMaintenanceRepo()
	item, _ := items.Create(context.Background(), &domain.Item{
		Nome: "Compressor", Status: domain.StatusManutencao,
	})
	svc := NewMaintenanceService(records, items, zerolog.Nop())

	performed := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	record, err := svc.Log(context.Background(), operadorActor(), ports.MaintenanceInput{
		ItemID:      item.ID,
		Type:        domain.MaintenanceCorretiva,
		Description: "troca de filtro",
		PerformedAt: performed,
		Technician:  "João",
	})
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if record.CreatedBy != "Op" {
		t.Fatalf("expected creator from actor, got %q", record.CreatedBy)
	}

	got, _ := items.FindByID(context.Background(), item.ID)
	if got.Status != domain.StatusOperacao {
		t.Fatalf("expected item back in operation, got %s", got.Status)
	}
	if !got.LastMaintenance.Equal(performed) {
		t.Fatalf("expected last maintenance %v, got %v", performed, got.LastMaintenance)
	}
}

func TestMaintenanceService_Log_UnknownItem(t *testing.T) {
	svc := NewMaintenanceService(newStubMaintenanceRepo(), newStubItemRepo(), zerolog.Nop())

	_, err := svc.Log(context.Background(), operadorActor(), ports.MaintenanceInput{
		ItemID:      "missing",
		Type:        domain.MaintenancePreventiva,
		Description: "x",
		PerformedAt: time.Now(),
		Technician:  "João",
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestMaintenanceService_Log_InvalidType(t *testing.T) {
	items := newStubItemRepo()
	item, _ := items.Create(context.Background(), &domain.Item{Nome: "Bomba", Status: domain.StatusOperacao})
	svc := NewMaintenanceService(newStubMaintenanceRepo(), items, zerolog.Nop())

	_, err := svc.Log(context.Background(), operadorActor(), ports.MaintenanceInput{
		ItemID: item.ID, Type: "Cosmética", Description: "x", PerformedAt: time.Now(), Technician: "J",
	})
	if !errors.Is(err, domain.ErrInvalidMaintenance) {
		t.Fatalf("expected ErrInvalidMaintenance, got %v", err)
	}
}

func TestMaintenanceService_HistoryByItem(t *testing.T) {
	items := newStubItemRepo()
	records := newStubMaintenanceRepo()
	item, _ := items.Create(context.Background(), &domain.Item{Nome: "Bomba", Status: domain.StatusOperacao})
	other, _ := items.Create(context.Background(), &domain.Item{Nome: "Motor", Status: domain.StatusOperacao})
	svc := NewMaintenanceService(records, items, zerolog.Nop())

	for _, id := range []string{item.ID, item.ID, other.ID} {
		if _, err := svc.Log(context.Background(), operadorActor(), ports.MaintenanceInput{
			ItemID: id, Type: domain.MaintenancePreventiva, Description: "rotina",
			PerformedAt: time.Now(), Technician: "J",
		}); err != nil {
			t.Fatalf("log failed: %v", err)
		}
	}

	history, err := svc.HistoryByItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}

	if _, err := svc.HistoryByItem(context.Background(), "missing"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
