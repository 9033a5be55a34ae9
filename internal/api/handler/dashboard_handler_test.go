package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

func TestDashboardHandler_Stats(t *testing.T) {
	svc := &stubDashboardService{
		statsFn: func(ctx context.Context, userID string) (*ports.DashboardStats, error) {
			if userID != alice.SubjectID {
				t.Fatalf("unexpected user %q", userID)
			}
			return &ports.DashboardStats{Connections: 4, MentorshipSessions: 2, EventsRegistered: 1, ResourcesShared: 3}, nil
		},
	}
	h := NewDashboardHandler(svc)
	c, rec := newContext(http.MethodGet, "/api/alumni-dashboard/stats", "", &alice)

	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["connections"] != 4 || resp["mentorshipSessions"] != 2 || resp["resourcesShared"] != 3 {
		t.Fatalf("unexpected stats %v", resp)
	}
}

func TestDashboardHandler_Activities(t *testing.T) {
	svc := &stubDashboardService{
		activitiesFn: func(ctx context.Context, userID string) ([]*domain.Activity, error) {
			return []*domain.Activity{{ID: "a-1", Type: domain.ActivityEvent, Description: "Registered"}}, nil
		},
	}
	h := NewDashboardHandler(svc)
	c, rec := newContext(http.MethodGet, "/api/alumni-dashboard/activities", "", &alice)

	if err := h.Activities(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Data []domain.Activity `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Type != domain.ActivityEvent {
		t.Fatalf("unexpected feed %s", rec.Body.String())
	}
}

func TestDashboardHandler_Suggestions_Error(t *testing.T) {
	boom := errors.New("boom")
	svc := &stubDashboardService{
		suggestionsFn: func(ctx context.Context, userID string) ([]*domain.User, error) { return nil, boom },
	}
	h := NewDashboardHandler(svc)
	c, _ := newContext(http.MethodGet, "/api/alumni-dashboard/networking-suggestions", "", &alice)

	if err := h.Suggestions(c); !errors.Is(err, boom) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
}

func TestDashboardHandler_Events(t *testing.T) {
	svc := &stubDashboardService{
		upcomingFn: func(ctx context.Context, userID string) ([]*ports.DashboardEvent, error) {
			if userID != alice.SubjectID {
				t.Fatalf("unexpected user %q", userID)
			}
			return []*ports.DashboardEvent{
				{Event: &domain.Event{ID: "event-1", Title: "Reunion"}, Registered: true},
				{Event: &domain.Event{ID: "event-2", Title: "Meetup"}},
			}, nil
		},
	}
	h := NewDashboardHandler(svc)
	c, rec := newContext(http.MethodGet, "/api/alumni-dashboard/events", "", &alice)

	if err := h.Events(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Data []struct {
			ID         string `json:"id"`
			Title      string `json:"title"`
			Registered bool   `json:"registered"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 || !resp.Data[0].Registered || resp.Data[1].Registered || resp.Data[0].Title != "Reunion" {
		t.Fatalf("unexpected events %s", rec.Body.String())
	}
}

func TestDashboardHandler_RecentAlumni(t *testing.T) {
	svc := &stubDashboardService{
		recentFn: func(ctx context.Context) ([]*domain.User, error) { return nil, nil },
	}
	h := NewDashboardHandler(svc)
	c, rec := newContext(http.MethodGet, "/api/alumni-dashboard/recent-alumni", "", &alice)

	if err := h.RecentAlumni(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"data\":[]}\n" {
		t.Fatalf("expected empty list, got %s", got)
	}
}
