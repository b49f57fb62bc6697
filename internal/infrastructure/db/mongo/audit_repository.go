package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

const collectionSecurityEvents = "security_events"

// auditRetention bounds how long security events are kept.
const auditRetention = 90 * 24 * time.Hour

// AuditRepository persists security events to the security_events collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionSecurityEvents)}
}

// EnsureIndexes creates the identity lookup index and the retention TTL index.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "identity", Value: 1}, {Key: "at", Value: -1}},
			Options: options.Index().SetName("identity_at"),
		},
		{
			Keys:    bson.D{{Key: "at", Value: 1}},
			Options: options.Index().SetName("at_ttl").SetExpireAfterSeconds(int32(auditRetention.Seconds())),
		},
	})
	if err != nil {
		return fmt.Errorf("security_events index: %w", err)
	}
	return nil
}

// InsertEvent appends a security event.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.SecurityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"kind":        string(event.Kind),
		"identity":    event.Identity,
		"outcome":     event.Outcome,
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Detail != "" {
		doc["detail"] = event.Detail
	}
	if event.RequestID != "" {
		doc["request_id"] = event.RequestID
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}
