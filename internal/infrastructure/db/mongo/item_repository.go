package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

const itemsCollection = "items"

// ItemRepository persists equipment items in MongoDB.
type ItemRepository struct {
	coll *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{coll: db.Collection(itemsCollection)}
}

type itemDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Nome            string             `bson:"nome"`
	Descricao       string             `bson:"descricao"`
	Localizacao     string             `bson:"localizacao"`
	Status          string             `bson:"status"`
	LastMaintenance int64              `bson:"last_maintenance,omitempty"`
	CreatedAt       int64              `bson:"created_at"`
	CreatedBy       string             `bson:"created_by,omitempty"`
	UpdatedAt       int64              `bson:"updated_at,omitempty"`
	UpdatedBy       string             `bson:"updated_by,omitempty"`
}

func (d *itemDoc) toDomain() *domain.Item {
	return &domain.Item{
		ID:              d.ID.Hex(),
		Nome:            d.Nome,
		Descricao:       d.Descricao,
		Localizacao:     d.Localizacao,
		Status:          domain.ItemStatus(d.Status),
		LastMaintenance: unixToTime(d.LastMaintenance),
		CreatedAt:       unixToTime(d.CreatedAt),
		CreatedBy:       d.CreatedBy,
		UpdatedAt:       unixToTime(d.UpdatedAt),
		UpdatedBy:       d.UpdatedBy,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := itemDoc{
		Nome:        item.Nome,
		Descricao:   item.Descricao,
		Localizacao: item.Localizacao,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.Unix(),
		CreatedBy:   item.CreatedBy,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	created := *item
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc itemDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ItemRepository) List(ctx context.Context) ([]*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Item
	for cur.Next(ctx) {
		var doc itemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cur.Err()
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"nome":        item.Nome,
		"descricao":   item.Descricao,
		"localizacao": item.Localizacao,
		"status":      string(item.Status),
		"updated_at":  item.UpdatedAt.Unix(),
		"updated_by":  item.UpdatedBy,
	}})
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// SetMaintained flips the item back to "Em Operação" and stamps the last
// maintenance date. Single update so status and stamp cannot diverge.
func (r *ItemRepository) SetMaintained(ctx context.Context, id string, performedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"status":           string(domain.StatusOperacao),
		"last_maintenance": performedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("set maintained: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
