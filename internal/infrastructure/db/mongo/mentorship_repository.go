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

const (
	collectionMentorships = "mentorships"
	collectionRequests    = "mentorship_requests"
)

type MentorshipRepository struct {
	mentorships *mongo.Collection
	requests    *mongo.Collection
}

func NewMentorshipRepository(db *mongo.Database) *MentorshipRepository {
	return &MentorshipRepository{
		mentorships: db.Collection(collectionMentorships),
		requests:    db.Collection(collectionRequests),
	}
}

type mongoMentorship struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	MentorID   string             `bson:"mentor_id"`
	MentorName string             `bson:"mentor_name"`
	Title      string             `bson:"title"`
	Expertise  []string           `bson:"expertise"`
	Capacity   int                `bson:"capacity"`
	Enrolled   int                `bson:"enrolled"`
	Bio        string             `bson:"bio,omitempty"`
	Location   string             `bson:"location,omitempty"`
	IsRemote   bool               `bson:"is_remote"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (m mongoMentorship) toDomain() *domain.Mentorship {
	return &domain.Mentorship{
		ID:         m.ID.Hex(),
		MentorID:   m.MentorID,
		MentorName: m.MentorName,
		Title:      m.Title,
		Expertise:  m.Expertise,
		Capacity:   m.Capacity,
		Enrolled:   m.Enrolled,
		Bio:        m.Bio,
		Location:   m.Location,
		IsRemote:   m.IsRemote,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type mongoRequest struct {
	ID           primitive.ObjectID      `bson:"_id,omitempty"`
	MentorshipID string                  `bson:"mentorship_id"`
	MentorID     string                  `bson:"mentor_id"`
	StudentID    string                  `bson:"student_id"`
	StudentName  string                  `bson:"student_name"`
	Topic        string                  `bson:"topic"`
	Message      string                  `bson:"message,omitempty"`
	Status       domain.MentorshipStatus `bson:"status"`
	CreatedAt    time.Time               `bson:"created_at"`
	RespondedAt  *time.Time              `bson:"responded_at,omitempty"`
}

func (m mongoRequest) toDomain() *domain.MentorshipRequest {
	return &domain.MentorshipRequest{
		ID:           m.ID.Hex(),
		MentorshipID: m.MentorshipID,
		MentorID:     m.MentorID,
		StudentID:    m.StudentID,
		StudentName:  m.StudentName,
		Topic:        m.Topic,
		Message:      m.Message,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (r *MentorshipRepository) Create(ctx context.Context, m *domain.Mentorship) (*domain.Mentorship, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.mentorships.InsertOne(ctx, mongoMentorship{
		MentorID:   m.MentorID,
		MentorName: m.MentorName,
		Title:      m.Title,
		Expertise:  m.Expertise,
		Capacity:   m.Capacity,
		Enrolled:   m.Enrolled,
		Bio:        m.Bio,
		Location:   m.Location,
		IsRemote:   m.IsRemote,
		CreatedAt:  m.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert mentorship: %w", err)
	}

	created := *m
	created.ID = insertedID(res)
	return &created, nil
}

func (r *MentorshipRepository) FindByID(ctx context.Context, id string) (*domain.Mentorship, error) {
	oid, err := parseID(id, domain.ErrMentorshipNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMentorship
	if err := r.mentorships.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMentorshipNotFound
		}
		return nil, fmt.Errorf("find mentorship: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *MentorshipRepository) List(ctx context.Context) ([]*domain.Mentorship, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.mentorships.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list mentorships: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoMentorship
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode mentorships: %w", err)
	}
	out := make([]*domain.Mentorship, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MentorshipRepository) CreateRequest(ctx context.Context, req *domain.MentorshipRequest) (*domain.MentorshipRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.requests.InsertOne(ctx, mongoRequest{
		MentorshipID: req.MentorshipID,
		MentorID:     req.MentorID,
		StudentID:    req.StudentID,
		StudentName:  req.StudentName,
		Topic:        req.Topic,
		Message:      req.Message,
		Status:       req.Status,
		CreatedAt:    req.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert mentorship request: %w", err)
	}

	created := *req
	created.ID = insertedID(res)
	return &created, nil
}

func (r *MentorshipRepository) PendingRequests(ctx context.Context, mentorID string, limit int) ([]*domain.MentorshipRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.requests.Find(ctx, bson.M{"mentor_id": mentorID, "status": domain.MentorshipPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("list mentorship requests: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRequest
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode mentorship requests: %w", err)
	}
	out := make([]*domain.MentorshipRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Respond updates the request only while it is pending and addressed to mentorID.
// Accepting first takes a place on the offering; the place is given back when
// the request could not be moved.
func (r *MentorshipRepository) Respond(ctx context.Context, requestID, mentorID string, status domain.MentorshipStatus) (*domain.MentorshipRequest, error) {
	oid, err := parseID(requestID, domain.ErrRequestNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pending := bson.M{"_id": oid, "mentor_id": mentorID, "status": domain.MentorshipPending}

	var seat primitive.ObjectID
	if status == domain.MentorshipAccepted {
		var cur mongoRequest
		if err := r.requests.FindOne(ctx, pending).Decode(&cur); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrRequestNotFound
			}
			return nil, fmt.Errorf("find mentorship request: %w", err)
		}
		if seat, err = r.takePlace(ctx, cur.MentorshipID); err != nil {
			return nil, err
		}
	}

	var mr mongoRequest
	err = r.requests.FindOneAndUpdate(ctx,
		pending,
		bson.M{"$set": bson.M{"status": status, "responded_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mr)
	if err != nil {
		if !seat.IsZero() {
			r.releasePlace(seat)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("respond to mentorship request: %w", err)
	}
	return mr.toDomain(), nil
}

// placeFilter matches the offering only while enrolled is below capacity.
func placeFilter(id primitive.ObjectID) bson.M {
	return bson.M{
		"_id":   id,
		"$expr": bson.M{"$lt": bson.A{"$enrolled", "$capacity"}},
	}
}

func (r *MentorshipRepository) takePlace(ctx context.Context, mentorshipID string) (primitive.ObjectID, error) {
	moid, err := parseID(mentorshipID, domain.ErrMentorshipNotFound)
	if err != nil {
		return primitive.NilObjectID, err
	}
	res, err := r.mentorships.UpdateOne(ctx, placeFilter(moid), bson.M{"$inc": bson.M{"enrolled": 1}})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("take mentorship place: %w", err)
	}
	if res.ModifiedCount == 1 {
		return moid, nil
	}

	n, err := r.mentorships.CountDocuments(ctx, bson.M{"_id": moid})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("find mentorship: %w", err)
	}
	if n == 0 {
		return primitive.NilObjectID, domain.ErrMentorshipNotFound
	}
	return primitive.NilObjectID, domain.ErrMentorshipFull
}

func (r *MentorshipRepository) releasePlace(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	_, _ = r.mentorships.UpdateOne(ctx,
		bson.M{"_id": id, "enrolled": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"enrolled": -1}})
}

func (r *MentorshipRepository) CountAccepted(ctx context.Context, mentorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.requests.CountDocuments(ctx, bson.M{"mentor_id": mentorID, "status": domain.MentorshipAccepted})
	if err != nil {
		return 0, fmt.Errorf("count accepted requests: %w", err)
	}
	return n, nil
}

func (r *MentorshipRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.mentorships.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}); err != nil {
		return err
	}

	_, err := r.requests.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "mentor_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "student_id", Value: 1}}},
	})
	return err
}
