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

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

const collectionEvents = "events"

type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type mongoEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Type        string             `bson:"type"`
	Description string             `bson:"description,omitempty"`
	Date        time.Time          `bson:"date"`
	Location    string             `bson:"location"`
	IsVirtual   bool               `bson:"is_virtual"`
	Capacity    int                `bson:"capacity"`
	Attendees   int                `bson:"attendees"`
	Price       float64            `bson:"price"`
	BannerURL   string             `bson:"banner_url,omitempty"`
	CreatedBy   string             `bson:"created_by"`
	Registrants []string           `bson:"registrants"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (m mongoEvent) toDomain() *domain.Event {
	registrants := m.Registrants
	if registrants == nil {
		registrants = []string{}
	}
	return &domain.Event{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Type:        m.Type,
		Description: m.Description,
		Date:        m.Date.UTC(),
		Location:    m.Location,
		IsVirtual:   m.IsVirtual,
		Capacity:    m.Capacity,
		Attendees:   m.Attendees,
		Price:       m.Price,
		BannerURL:   m.BannerURL,
		CreatedBy:   m.CreatedBy,
		Registrants: registrants,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	registrants := e.Registrants
	if registrants == nil {
		registrants = []string{}
	}
	res, err := r.col.InsertOne(ctx, mongoEvent{
		Title:       e.Title,
		Type:        e.Type,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		IsVirtual:   e.IsVirtual,
		Capacity:    e.Capacity,
		Attendees:   e.Attendees,
		Price:       e.Price,
		BannerURL:   e.BannerURL,
		CreatedBy:   e.CreatedBy,
		Registrants: registrants,
		CreatedAt:   e.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *e
	created.ID = insertedID(res)
	created.Registrants = registrants
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := parseID(id, domain.ErrEventNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEvent
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

// List returns events that have not finished yet, newest first.
func (r *EventRepository) List(ctx context.Context, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	since := time.Now().UTC().Add(-24 * time.Hour)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"date": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	events := make([]*domain.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}

// Register takes a seat in a single conditional update so that concurrent
// registrations can never exceed capacity or add the same user twice.
func (r *EventRepository) Register(ctx context.Context, eventID, userID string) (bool, error) {
	oid, err := parseID(eventID, domain.ErrEventNotFound)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":         oid,
		"registrants": bson.M{"$ne": userID},
		"$expr":       bson.M{"$lt": bson.A{"$attendees", "$capacity"}},
	}
	update := bson.M{
		"$push": bson.M{"registrants": userID},
		"$inc":  bson.M{"attendees": 1},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("register for event: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *EventRepository) CountRegistered(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"registrants": userID})
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "registrants", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
