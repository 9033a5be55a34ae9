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

const (
	collectionResources = "resources"
	collectionBookmarks = "resource_bookmarks"
)

type ResourceRepository struct {
	resources *mongo.Collection
	bookmarks *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{
		resources: db.Collection(collectionResources),
		bookmarks: db.Collection(collectionBookmarks),
	}
}

type mongoResource struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Type        string             `bson:"type"`
	Tags        []string           `bson:"tags"`
	FileKey     string             `bson:"file_key,omitempty"`
	FileURL     string             `bson:"file_url,omitempty"`
	FileName    string             `bson:"file_name,omitempty"`
	FileSize    int64              `bson:"file_size,omitempty"`
	AuthorID    primitive.ObjectID `bson:"author_id"`
	AuthorName  string             `bson:"author_name,omitempty"`
	AuthorRole  string             `bson:"author_role,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type mongoBookmark struct {
	UserID     string    `bson:"user_id"`
	ResourceID string    `bson:"resource_id"`
	CreatedAt  time.Time `bson:"created_at"`
}

func toMongoResource(r *domain.Resource) (mongoResource, error) {
	author, err := primitive.ObjectIDFromHex(r.AuthorID)
	if err != nil {
		return mongoResource{}, fmt.Errorf("%w: malformed author id", domain.ErrValidation)
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return mongoResource{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Type:        r.Type,
		Tags:        tags,
		FileKey:     r.FileKey,
		FileURL:     r.FileURL,
		FileName:    r.FileName,
		FileSize:    r.FileSize,
		AuthorID:    author,
		AuthorName:  r.AuthorName,
		AuthorRole:  r.AuthorRole,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func (m mongoResource) toDomain() *domain.Resource {
	return &domain.Resource{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Type:        m.Type,
		Tags:        m.Tags,
		FileKey:     m.FileKey,
		FileURL:     m.FileURL,
		FileName:    m.FileName,
		FileSize:    m.FileSize,
		AuthorID:    m.AuthorID.Hex(),
		AuthorName:  m.AuthorName,
		AuthorRole:  m.AuthorRole,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	doc, err := toMongoResource(res)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ins, err := r.resources.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}

	created := *res
	created.ID = insertedID(ins)
	return &created, nil
}

// withAuthor joins the current author name and role from the users collection.
func withAuthor(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "author_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{
			"author_name": bson.M{"$ifNull": bson.A{"$author.name", "$author_name"}},
			"author_role": bson.M{"$ifNull": bson.A{"$author.role", "$author_role"}},
		}}},
		{{Key: "$project", Value: bson.M{"author": 0}}},
	}
}

func (r *ResourceRepository) aggregate(ctx context.Context, match bson.M) ([]*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.resources.Aggregate(ctx, withAuthor(match))
	if err != nil {
		return nil, fmt.Errorf("aggregate resources: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoResource
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	out := make([]*domain.Resource, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*domain.Resource, error) {
	oid, err := parseID(id, domain.ErrResourceNotFound)
	if err != nil {
		return nil, err
	}
	found, err := r.aggregate(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrResourceNotFound
	}
	return found[0], nil
}

// List returns every resource newest first with its author joined.
func (r *ResourceRepository) List(ctx context.Context) ([]*domain.Resource, error) {
	return r.aggregate(ctx, bson.M{})
}

func (r *ResourceRepository) Update(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	oid, err := parseID(res.ID, domain.ErrResourceNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":       res.Title,
		"description": res.Description,
		"category":    res.Category,
		"type":        res.Type,
		"tags":        res.Tags,
		"file_key":    res.FileKey,
		"file_url":    res.FileURL,
		"file_name":   res.FileName,
		"file_size":   res.FileSize,
		"updated_at":  res.UpdatedAt,
	}
	out, err := r.resources.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	if out.MatchedCount == 0 {
		return nil, domain.ErrResourceNotFound
	}

	updated := *res
	return &updated, nil
}

// Delete removes the resource and every bookmark pointing at it.
func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, domain.ErrResourceNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.resources.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	if _, err := r.bookmarks.DeleteMany(ctx, bson.M{"resource_id": id}); err != nil {
		return fmt.Errorf("delete bookmarks: %w", err)
	}
	return nil
}

func (r *ResourceRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.resources.CountDocuments(ctx, bson.M{"author_id": oid})
	if err != nil {
		return 0, fmt.Errorf("count resources: %w", err)
	}
	return n, nil
}

// ToggleBookmark removes an existing bookmark or creates a missing one.
func (r *ResourceRepository) ToggleBookmark(ctx context.Context, userID, resourceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	key := bson.M{"user_id": userID, "resource_id": resourceID}
	del, err := r.bookmarks.DeleteOne(ctx, key)
	if err != nil {
		return false, fmt.Errorf("remove bookmark: %w", err)
	}
	if del.DeletedCount > 0 {
		return false, nil
	}

	_, err = r.bookmarks.InsertOne(ctx, mongoBookmark{UserID: userID, ResourceID: resourceID, CreatedAt: time.Now().UTC()})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("add bookmark: %w", err)
	}
	return true, nil
}

func (r *ResourceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.resources.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}); err != nil {
		return err
	}

	_, err := r.bookmarks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "resource_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
