package domain

import "time"

const DefaultEventType = "networking"

// Event is an alumni gathering members can register for.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	IsVirtual   bool      `json:"isVirtual"`
	Capacity    int       `json:"capacity"`
	Attendees   int       `json:"attendees"`
	Price       float64   `json:"price"`
	BannerURL   string    `json:"bannerUrl,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	Registrants []string  `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsRegistered reports whether userID already holds a seat.
func (e *Event) IsRegistered(userID string) bool {
	for _, id := range e.Registrants {
		if id == userID {
			return true
		}
	}
	return false
}
