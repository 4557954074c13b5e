package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

const maintenanceCollection = "maintenance"

// MaintenanceRepository persists maintenance records in MongoDB.
type MaintenanceRepository struct {
	coll *mongo.Collection
}

func NewMaintenanceRepository(db *mongo.Database) *MaintenanceRepository {
	return &MaintenanceRepository{coll: db.Collection(maintenanceCollection)}
}

type maintenanceDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ItemID        string             `bson:"item_id"`
	Type          string             `bson:"type"`
	Description   string             `bson:"description"`
	PerformedAt   int64              `bson:"performed_at"`
	Technician    string             `bson:"technician"`
	NextScheduled int64              `bson:"next_scheduled,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
	CreatedBy     string             `bson:"created_by"`
}

func (d *maintenanceDoc) toDomain() *domain.Maintenance {
	m := &domain.Maintenance{
		ID:          d.ID.Hex(),
		ItemID:      d.ItemID,
		Type:        domain.MaintenanceType(d.Type),
		Description: d.Description,
		PerformedAt: unixToTime(d.PerformedAt),
		Technician:  d.Technician,
		CreatedAt:   unixToTime(d.CreatedAt),
		CreatedBy:   d.CreatedBy,
	}
	if d.NextScheduled != 0 {
		next := unixToTime(d.NextScheduled)
		m.NextScheduled = &next
	}
	return m
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) (*domain.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := maintenanceDoc{
		ItemID:      m.ItemID,
		Type:        string(m.Type),
		Description: m.Description,
		PerformedAt: m.PerformedAt.Unix(),
		Technician:  m.Technician,
		CreatedAt:   m.CreatedAt.Unix(),
		CreatedBy:   m.CreatedBy,
	}
	if m.NextScheduled != nil {
		doc.NextScheduled = m.NextScheduled.Unix()
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert maintenance: %w", err)
	}

	created := *m
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MaintenanceRepository) List(ctx context.Context) ([]*domain.Maintenance, error) {
	return r.find(ctx, bson.M{})
}

func (r *MaintenanceRepository) ListByItem(ctx context.Context, itemID string) ([]*domain.Maintenance, error) {
	return r.find(ctx, bson.M{"item_id": itemID})
}

func (r *MaintenanceRepository) find(ctx context.Context, filter bson.M) ([]*domain.Maintenance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "performed_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	defer cur.Close(ctx)

	var records []*domain.Maintenance
	for cur.Next(ctx) {
		var doc maintenanceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode maintenance: %w", err)
		}
		records = append(records, doc.toDomain())
	}
	return records, cur.Err()
}

func (r *MaintenanceRepository) DeleteByItem(ctx context.Context, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"item_id": itemID}); err != nil {
		return fmt.Errorf("delete maintenance by item: %w", err)
	}
	return nil
}

// EnsureIndexes creates the item_id index used by history lookups and
// cascade deletes.
func (r *MaintenanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "item_id", Value: 1}},
	})
	return err
}
