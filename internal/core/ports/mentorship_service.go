package ports

import (
	"context"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// MentorshipRepository persists offerings and the requests made against them.
type MentorshipRepository interface {
	Create(ctx context.Context, m *domain.Mentorship) (*domain.Mentorship, error)
	FindByID(ctx context.Context, id string) (*domain.Mentorship, error)
	List(ctx context.Context) ([]*domain.Mentorship, error)

	CreateRequest(ctx context.Context, r *domain.MentorshipRequest) (*domain.MentorshipRequest, error)
	PendingRequests(ctx context.Context, mentorID string, limit int) ([]*domain.MentorshipRequest, error)
	// Respond moves a pending request addressed to mentorID into status.
	Respond(ctx context.Context, requestID, mentorID string, status domain.MentorshipStatus) (*domain.MentorshipRequest, error)
	CountAccepted(ctx context.Context, mentorID string) (int64, error)
}

// CreateMentorshipInput carries the offering form.
type CreateMentorshipInput struct {
	MentorID   string
	MentorName string
	Title      string
	Expertise  []string
	Capacity   int
	Bio        string
	Location   string
	IsRemote   bool
}

// RequestMentorshipInput carries a student's request.
type RequestMentorshipInput struct {
	MentorshipID string
	StudentID    string
	Topic        string
	Message      string
}

type MentorshipService interface {
	Create(ctx context.Context, in CreateMentorshipInput) (*domain.Mentorship, error)
	List(ctx context.Context) ([]*domain.Mentorship, error)
	Request(ctx context.Context, in RequestMentorshipInput) (*domain.MentorshipRequest, error)
	PendingRequests(ctx context.Context, mentorID string) ([]*domain.MentorshipRequest, error)
	Respond(ctx context.Context, requestID, mentorID, response string) (*domain.MentorshipRequest, error)
}
