package ports

import (
	"context"
	"time"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// EventRepository persists alumni events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, limit int) ([]*domain.Event, error)
	// Register atomically adds userID to the registrants when a seat is free and the
	// user is not registered yet. It reports whether a seat was taken.
	Register(ctx context.Context, eventID, userID string) (bool, error)
	CountRegistered(ctx context.Context, userID string) (int64, error)
}

// CreateEventInput carries the event form.
type CreateEventInput struct {
	Title       string
	Type        string
	Description string
	Date        time.Time
	Location    string
	IsVirtual   bool
	Capacity    int
	Price       float64
	Banner      *Upload
	CreatedBy   string
}

type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Register(ctx context.Context, eventID, userID string) (*domain.Event, error)
}
