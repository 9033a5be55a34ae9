package ports

import (
	"context"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// ActivityInput is the DTO enqueued by domain services for the feed.
type ActivityInput struct {
	UserID      string
	Type        domain.ActivityType
	Description string
	Ref         string // identifies the subject of the action, used for de-duplication
}

// ActivityRepository persists feed entries.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Activity, error)
}

// ActivityService processes queued feed entries.
type ActivityService interface {
	Record(ctx context.Context, in ActivityInput) error
}

// ActivityPublisher hands feed entries to the asynchronous pipeline.
type ActivityPublisher interface {
	Enqueue(in ActivityInput)
}
