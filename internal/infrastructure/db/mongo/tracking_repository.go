package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

const collectionTrackingUpdates = "tracking_updates"

// TrackingRepository stores the append-only ledger of tracking updates.
// Documents are never modified after insertion.
type TrackingRepository struct {
	col *mongo.Collection
}

func NewTrackingRepository(db *mongo.Database) *TrackingRepository {
	return &TrackingRepository{col: db.Collection(collectionTrackingUpdates)}
}

// Append assigns the entry id and timestamp and inserts it.
func (r *TrackingRepository) Append(ctx context.Context, update *domain.TrackingUpdate) (*domain.TrackingUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stored := *update
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListFor returns all of a delivery's updates, newest first.
func (r *TrackingRepository) ListFor(ctx context.Context, deliveryID string) ([]*domain.TrackingUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"delivery_id": deliveryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var updates []*domain.TrackingUpdate
	if err := cursor.All(ctx, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// LatestLocated returns the most recent update carrying coordinates, or nil
// when the delivery has no located update.
func (r *TrackingRepository) LatestLocated(ctx context.Context, deliveryID string) (*domain.TrackingUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"delivery_id": deliveryID,
		"latitude":    bson.M{"$exists": true},
		"longitude":   bson.M{"$exists": true},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var u domain.TrackingUpdate
	err := r.col.FindOne(ctx, filter, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// DeleteFor removes the whole ledger of a delivery.
func (r *TrackingRepository) DeleteFor(ctx context.Context, deliveryID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"delivery_id": deliveryID})
	return err
}

// EnsureIndexes creates the compound index serving both the timeline listing
// and the latest-located lookup.
func (r *TrackingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "delivery_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
