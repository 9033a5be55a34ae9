package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

const (
	activityFeedLimit = 20
	suggestionsLimit  = 5
	upcomingLimit     = 10
	recentAlumniLimit = 5
)

type dashboardService struct {
	users       ports.UserRepository
	events      ports.EventRepository
	mentorships ports.MentorshipRepository
	resources   ports.ResourceRepository
	activities  ports.ActivityRepository
	log         zerolog.Logger
}

// NewDashboardService returns a DashboardService implementation.
func NewDashboardService(
	users ports.UserRepository,
	events ports.EventRepository,
	mentorships ports.MentorshipRepository,
	resources ports.ResourceRepository,
	activities ports.ActivityRepository,
	log zerolog.Logger,
) ports.DashboardService {
	return &dashboardService{
		users:       users,
		events:      events,
		mentorships: mentorships,
		resources:   resources,
		activities:  activities,
		log:         log,
	}
}

// Stats runs the four counts concurrently; the first failure cancels the rest.
func (s *dashboardService) Stats(ctx context.Context, userID string) (*ports.DashboardStats, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	var stats ports.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if user.Profile.Company == "" {
			return nil
		}
		n, err := s.users.CountByCompany(gctx, user.Profile.Company, user.ID)
		stats.Connections = n
		return err
	})
	g.Go(func() error {
		n, err := s.mentorships.CountAccepted(gctx, user.ID)
		stats.MentorshipSessions = n
		return err
	})
	g.Go(func() error {
		n, err := s.events.CountRegistered(gctx, user.ID)
		stats.EventsRegistered = n
		return err
	})
	g.Go(func() error {
		n, err := s.resources.CountByAuthor(gctx, user.ID)
		stats.ResourcesShared = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

func (s *dashboardService) Activities(ctx context.Context, userID string) ([]*domain.Activity, error) {
	items, err := s.activities.ListByUser(ctx, userID, activityFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard activities: %w", err)
	}
	return items, nil
}

func (s *dashboardService) Suggestions(ctx context.Context, userID string) ([]*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("networking suggestions: %w", err)
	}
	if user.Profile.Company == "" && user.Profile.Location == "" && user.Profile.GraduationYear == 0 {
		return []*domain.User{}, nil
	}
	users, err := s.users.Suggestions(ctx, user, suggestionsLimit)
	if err != nil {
		return nil, fmt.Errorf("networking suggestions: %w", err)
	}
	return users, nil
}

func (s *dashboardService) UpcomingEvents(ctx context.Context, userID string) ([]*ports.DashboardEvent, error) {
	events, err := s.events.List(ctx, upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard events: %w", err)
	}
	out := make([]*ports.DashboardEvent, 0, len(events))
	for _, e := range events {
		out = append(out, &ports.DashboardEvent{Event: e, Registered: e.IsRegistered(userID)})
	}
	return out, nil
}

func (s *dashboardService) RecentAlumni(ctx context.Context) ([]*domain.User, error) {
	users, _, err := s.users.List(ctx, ports.ListUsersFilter{
		Roles: []string{domain.RoleAlumni},
		Page:  1,
		Limit: recentAlumniLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("recent alumni: %w", err)
	}
	return users, nil
}
