package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

// eventDateLayouts are the accepted spellings of an event date.
var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type createEventRequest struct {
	Title       string  `json:"title"       form:"title"       validate:"required"`
	Type        string  `json:"type"        form:"type"`
	Description string  `json:"description" form:"description"`
	Date        string  `json:"date"        form:"date"        validate:"required"`
	Location    string  `json:"location"    form:"location"    validate:"required"`
	IsVirtual   bool    `json:"isVirtual"   form:"isVirtual"`
	Capacity    int     `json:"capacity"    form:"capacity"    validate:"gte=0"`
	Price       float64 `json:"price"       form:"price"       validate:"gte=0"`
}

type eventRegistrationResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

func parseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date must be RFC3339 or YYYY-MM-DD", domain.ErrValidation)
}
