package ports

import (
	"context"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	CollegeName  string
	CollegeEmail string
	CollegeCode  string
	Avatar       *Upload // optional
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// PasswordHasher produces and checks salted password digests.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify returns false on mismatch and an error only for a malformed digest.
	Verify(plain, digest string) (bool, error)
}

// TokenIssuer mints signed identity tokens.
type TokenIssuer interface {
	Issue(subjectID, role string) (string, error)
}

// TokenVerifier validates a token and returns the identity it asserts.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// RoleLookup reads the role currently stored for a subject.
type RoleLookup interface {
	CurrentRole(ctx context.Context, subjectID string) (string, error)
}
