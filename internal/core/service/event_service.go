package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnihub/alumni-network/internal/api/metrics"
	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

const (
	bannerPrefix     = "banners"
	defaultEventSize = 100
	eventListLimit   = 100
)

type eventService struct {
	events   ports.EventRepository
	files    ports.FileStore
	activity ports.ActivityPublisher
	log      zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(
	events ports.EventRepository,
	files ports.FileStore,
	activity ports.ActivityPublisher,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{events: events, files: files, activity: activity, log: log}
}

func (s *eventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	if title == "" || location == "" || in.Date.IsZero() {
		return nil, fmt.Errorf("%w: title, date and location are required", domain.ErrValidation)
	}
	if in.Capacity < 0 || in.Price < 0 {
		return nil, fmt.Errorf("%w: capacity and price must not be negative", domain.ErrValidation)
	}

	capacity := in.Capacity
	if capacity == 0 {
		capacity = defaultEventSize
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		typ = domain.DefaultEventType
	}

	event := &domain.Event{
		Title:       title,
		Type:        typ,
		Description: in.Description,
		Date:        in.Date.UTC(),
		Location:    location,
		IsVirtual:   in.IsVirtual,
		Capacity:    capacity,
		Price:       in.Price,
		CreatedBy:   in.CreatedBy,
		Registrants: []string{},
		CreatedAt:   time.Now().UTC(),
	}

	var bannerKey string
	if in.Banner != nil && s.files != nil {
		key, err := s.files.Save(ctx, bannerPrefix, *in.Banner)
		if err != nil {
			metrics.UploadsTotal.WithLabelValues(bannerPrefix, "error").Inc()
			return nil, fmt.Errorf("create event: store banner: %w", err)
		}
		metrics.UploadsTotal.WithLabelValues(bannerPrefix, "success").Inc()
		bannerKey = key
		event.BannerURL = s.files.URL(key)
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		if bannerKey != "" {
			_ = s.files.Delete(ctx, bannerKey)
		}
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", created.ID).Str("created_by", in.CreatedBy).Msg("event created")
	return created, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.events.List(ctx, eventListLimit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Register takes a seat for userID. Registering twice is a no-op.
func (s *eventService) Register(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	taken, err := s.events.Register(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("register for event: %w", err)
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("register for event: %w", err)
	}

	if !taken {
		if event.IsRegistered(userID) {
			metrics.EventRegistrationsTotal.WithLabelValues("already_registered").Inc()
			return event, nil
		}
		metrics.EventRegistrationsTotal.WithLabelValues("full").Inc()
		return nil, domain.ErrEventFull
	}

	metrics.EventRegistrationsTotal.WithLabelValues("registered").Inc()
	s.activity.Enqueue(ports.ActivityInput{
		UserID:      userID,
		Type:        domain.ActivityEvent,
		Description: "Registered for " + event.Title,
		Ref:         event.ID,
	})
	return event, nil
}
