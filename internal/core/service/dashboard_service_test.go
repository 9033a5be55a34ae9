package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

type failingEventCounter struct {
	*stubEventRepo
}

func (failingEventCounter) CountRegistered(context.Context, string) (int64, error) {
	return 0, errors.New("count failed")
}

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	me := seedUser(users, domain.User{Name: "Me", Email: "me@example.com", Profile: domain.Profile{Company: "Acme"}})
	seedUser(users, domain.User{Name: "Colleague", Email: "c@example.com", Profile: domain.Profile{Company: "Acme"}})
	seedUser(users, domain.User{Name: "Stranger", Email: "s@example.com", Profile: domain.Profile{Company: "Globex"}})

	events := newStubEventRepo()
	eventSvc := NewEventService(events, nil, &stubPublisher{}, zerolog.Nop())
	e := createTestEvent(t, eventSvc, 10)
	if _, err := eventSvc.Register(ctx, e.ID, me.ID); err != nil {
		t.Fatalf("register: %v", err)
	}

	mentorships := newStubMentorshipRepo()
	mentorships.requests["r-1"] = &domain.MentorshipRequest{ID: "r-1", MentorID: me.ID, Status: domain.MentorshipAccepted}
	mentorships.requests["r-2"] = &domain.MentorshipRequest{ID: "r-2", MentorID: me.ID, Status: domain.MentorshipPending}

	resources := newStubResourceRepo()
	resources.byID["res-1"] = &domain.Resource{ID: "res-1", AuthorID: me.ID}

	svc := NewDashboardService(users, events, mentorships, resources, &stubActivityRepo{}, zerolog.Nop())
	stats, err := svc.Stats(ctx, me.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	want := ports.DashboardStats{Connections: 1, MentorshipSessions: 1, EventsRegistered: 1, ResourcesShared: 1}
	if *stats != want {
		t.Fatalf("expected %+v, got %+v", want, *stats)
	}
}

func TestDashboardService_Stats_Error(t *testing.T) {
	users := newStubUserRepo()
	me := seedUser(users, domain.User{Name: "Me", Email: "me@example.com"})

	svc := NewDashboardService(users, failingEventCounter{newStubEventRepo()}, newStubMentorshipRepo(),
		newStubResourceRepo(), &stubActivityRepo{}, zerolog.Nop())

	if _, err := svc.Stats(context.Background(), me.ID); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDashboardService_Suggestions(t *testing.T) {
	users := newStubUserRepo()
	me := seedUser(users, domain.User{Name: "Me", Email: "me@example.com", Profile: domain.Profile{Location: "Lima"}})
	seedUser(users, domain.User{Name: "Near", Email: "n@example.com", Profile: domain.Profile{Location: "Lima"}})
	lonely := seedUser(users, domain.User{Name: "Lonely", Email: "l@example.com"})

	svc := NewDashboardService(users, newStubEventRepo(), newStubMentorshipRepo(), newStubResourceRepo(), &stubActivityRepo{}, zerolog.Nop())

	got, err := svc.Suggestions(context.Background(), me.ID)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Near" {
		t.Fatalf("unexpected suggestions: %+v", got)
	}

	got, _ = svc.Suggestions(context.Background(), lonely.ID)
	if len(got) != 0 {
		t.Fatalf("expected no suggestions for empty profile, got %d", len(got))
	}
}

func TestDashboardService_UpcomingEvents_FlagsCaller(t *testing.T) {
	ctx := context.Background()
	events := newStubEventRepo()
	eventSvc := NewEventService(events, nil, &stubPublisher{}, zerolog.Nop())
	joined := createTestEvent(t, eventSvc, 10)
	other := createTestEvent(t, eventSvc, 10)
	if _, err := eventSvc.Register(ctx, joined.ID, "user-9"); err != nil {
		t.Fatalf("register: %v", err)
	}

	svc := NewDashboardService(newStubUserRepo(), events, newStubMentorshipRepo(), newStubResourceRepo(), &stubActivityRepo{}, zerolog.Nop())
	got, err := svc.UpcomingEvents(ctx, "user-9")
	if err != nil {
		t.Fatalf("UpcomingEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	for _, e := range got {
		want := e.ID == joined.ID
		if e.Registered != want {
			t.Fatalf("event %s (other=%s): registered=%v, want %v", e.ID, other.ID, e.Registered, want)
		}
	}
}

func TestDashboardService_RecentAlumni(t *testing.T) {
	users := newStubUserRepo()
	seedUser(users, domain.User{Name: "Grad", Email: "g@example.com", Role: domain.RoleAlumni})

	svc := NewDashboardService(users, newStubEventRepo(), newStubMentorshipRepo(), newStubResourceRepo(), &stubActivityRepo{}, zerolog.Nop())
	got, err := svc.RecentAlumni(context.Background())
	if err != nil {
		t.Fatalf("RecentAlumni: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected alumni: %+v", got)
	}
	if len(lastListFilter.Roles) != 1 || lastListFilter.Roles[0] != domain.RoleAlumni ||
		lastListFilter.Page != 1 || lastListFilter.Limit != 5 {
		t.Fatalf("unexpected filter %+v", lastListFilter)
	}
}
