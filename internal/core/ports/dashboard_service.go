package ports

import (
	"context"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// DashboardStats are the personal counters shown on the alumni dashboard.
type DashboardStats struct {
	Connections        int64 `json:"connections"`
	MentorshipSessions int64 `json:"mentorshipSessions"`
	EventsRegistered   int64 `json:"eventsRegistered"`
	ResourcesShared    int64 `json:"resourcesShared"`
}

// DashboardEvent is an upcoming event as seen by one caller.
type DashboardEvent struct {
	*domain.Event
	Registered bool `json:"registered"`
}

type DashboardService interface {
	Stats(ctx context.Context, userID string) (*DashboardStats, error)
	Activities(ctx context.Context, userID string) ([]*domain.Activity, error)
	Suggestions(ctx context.Context, userID string) ([]*domain.User, error)
	// UpcomingEvents flags the events userID already holds a seat for.
	UpcomingEvents(ctx context.Context, userID string) ([]*DashboardEvent, error)
	// RecentAlumni returns the newest alumni accounts.
	RecentAlumni(ctx context.Context) ([]*domain.User, error)
}
