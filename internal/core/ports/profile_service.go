package ports

import (
	"context"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// UpdateProfileInput is a partial profile change plus an optional new avatar.
type UpdateProfileInput struct {
	Update domain.ProfileUpdate
	Avatar *Upload
}

// ListUsersInput carries directory query parameters from the transport layer.
type ListUsersInput struct {
	Roles          []string
	Search         string
	Company        string
	Location       string
	GraduationYear int
	Page           int
	Limit          int
}

// ListUsersResult is one directory page.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type ProfileService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error)
	List(ctx context.Context, in ListUsersInput) (*ListUsersResult, error)
	StoreResume(ctx context.Context, userID string, up Upload) (string, error)
}
