package domain

import "time"

// ActivityType classifies entries of the dashboard feed.
type ActivityType string

const (
	ActivityProfile    ActivityType = "profile"
	ActivityEvent      ActivityType = "event"
	ActivityMentorship ActivityType = "mentorship"
	ActivityResource   ActivityType = "resource"
)

// Activity is one entry of a user's feed.
type Activity struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Ref         string       `json:"ref,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}
