package ports

import (
	"context"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// CredentialStore is the persistence contract the authentication boundary consumes.
// Emails passed in are already normalized.
type CredentialStore interface {
	// Create persists a new user and returns it with its store-assigned ID.
	// A second record for the same email fails with domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// ListUsersFilter carries directory query parameters.
type ListUsersFilter struct {
	Roles          []string // empty = any role
	Search         string   // partial match on name, company or title
	Company        string
	Location       string
	GraduationYear int
	Page           int // 1-based
	Limit          int
}

// UserRepository is the full user store used outside the auth core.
type UserRepository interface {
	CredentialStore

	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// CountByCompany counts other users working at company.
	CountByCompany(ctx context.Context, company, excludeID string) (int64, error)
	// Suggestions returns up to limit users sharing company, location or graduation year with u.
	Suggestions(ctx context.Context, u *domain.User, limit int) ([]*domain.User, error)
}
