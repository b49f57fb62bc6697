package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

const collectionItems = "items"

// ItemRepository implements ports.ItemRepository using MongoDB.
type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection(collectionItems)}
}

type itemDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Location    string             `bson:"location,omitempty"`
	Category    string             `bson:"category,omitempty"`
	Status      string             `bson:"status"`
	Reward      float64            `bson:"reward"`
	ImageURL    string             `bson:"image_url,omitempty"`
	PostedBy    domain.AccountRef  `bson:"posted_by"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func newItemDoc(i *domain.Item) itemDoc {
	return itemDoc{
		Title:       i.Title,
		Description: i.Description,
		Location:    i.Location,
		Category:    i.Category,
		Status:      string(i.Status),
		Reward:      i.Reward,
		ImageURL:    i.ImageURL,
		PostedBy:    i.PostedBy,
		CreatedAt:   i.CreatedAt.UTC(),
		UpdatedAt:   i.UpdatedAt.UTC(),
	}
}

func (d itemDoc) toDomain() *domain.Item {
	return &domain.Item{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Category:    d.Category,
		Status:      domain.ItemStatus(d.Status),
		Reward:      d.Reward,
		ImageURL:    d.ImageURL,
		PostedBy:    d.PostedBy,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// EnsureIndexes creates the owner and status lookup indexes.
func (r *ItemRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "posted_by.id", Value: 1}}, Options: options.Index().SetName("posted_by_id")},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("status_created_at")},
	})
	if err != nil {
		return fmt.Errorf("items index: %w", err)
	}
	return nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newItemDoc(item)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc itemDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns matching items, newest first.
func (r *ItemRepository) List(ctx context.Context, f ports.ItemFilter) ([]*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, itemFilter(f), options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer cur.Close(ctx)

	var docs []itemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	out := make([]*domain.Item, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       item.Title,
		"description": item.Description,
		"location":    item.Location,
		"category":    item.Category,
		"status":      string(item.Status),
		"reward":      item.Reward,
		"image_url":   item.ImageURL,
		"updated_at":  item.UpdatedAt.UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"posted_by.id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete items by owner: %w", err)
	}
	return res.DeletedCount, nil
}

func itemFilter(f ports.ItemFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Location != "" {
		filter["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Location), Options: "i"}
	}
	if f.PostedBy != "" {
		filter["posted_by.id"] = f.PostedBy
	}
	return filter
}
