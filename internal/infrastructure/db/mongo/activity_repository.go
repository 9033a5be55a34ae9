package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

const collectionActivities = "activities"

type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

type mongoActivity struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	UserID      string              `bson:"user_id"`
	Type        domain.ActivityType `bson:"type"`
	Description string              `bson:"description"`
	Ref         string              `bson:"ref,omitempty"`
	Timestamp   time.Time           `bson:"timestamp"`
}

// Insert appends an entry to the feed and sets its ID.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoActivity{
		UserID:      a.UserID,
		Type:        a.Type,
		Description: a.Description,
		Ref:         a.Ref,
		Timestamp:   a.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	a.ID = insertedID(res)
	return nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoActivity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	out := make([]*domain.Activity, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Activity{
			ID:          d.ID.Hex(),
			UserID:      d.UserID,
			Type:        d.Type,
			Description: d.Description,
			Ref:         d.Ref,
			Timestamp:   d.Timestamp.UTC(),
		})
	}
	return out, nil
}

func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
