package ports

import (
	"context"
	"io"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// ResourceRepository persists library resources and per-user bookmarks.
type ResourceRepository interface {
	Create(ctx context.Context, r *domain.Resource) (*domain.Resource, error)
	FindByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) (*domain.Resource, error)
	Delete(ctx context.Context, id string) error
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	// ToggleBookmark flips the bookmark and returns the new state.
	ToggleBookmark(ctx context.Context, userID, resourceID string) (bool, error)
}

// ResourceInput carries the resource form for create and update.
type ResourceInput struct {
	Title       string
	Description string
	Category    string
	Type        string
	Tags        []string
	File        *Upload
}

// Download is an open stored file ready to stream.
type Download struct {
	Name string
	Body io.ReadCloser
}

type ResourceService interface {
	List(ctx context.Context) ([]*domain.Resource, error)
	Get(ctx context.Context, id string) (*domain.Resource, error)
	Create(ctx context.Context, author domain.Identity, in ResourceInput) (*domain.Resource, error)
	Update(ctx context.Context, caller domain.Identity, id string, in ResourceInput) (*domain.Resource, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
	Download(ctx context.Context, id string) (*Download, error)
	ToggleBookmark(ctx context.Context, userID, resourceID string) (bool, error)
}
