package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

const (
	defaultMentorshipCapacity = 5
	pendingRequestsLimit      = 10
)

type mentorshipService struct {
	mentorships ports.MentorshipRepository
	users       ports.CredentialStore
	activity    ports.ActivityPublisher
	log         zerolog.Logger
}

// NewMentorshipService returns a MentorshipService implementation.
func NewMentorshipService(
	mentorships ports.MentorshipRepository,
	users ports.CredentialStore,
	activity ports.ActivityPublisher,
	log zerolog.Logger,
) ports.MentorshipService {
	return &mentorshipService{mentorships: mentorships, users: users, activity: activity, log: log}
}

func (s *mentorshipService) Create(ctx context.Context, in ports.CreateMentorshipInput) (*domain.Mentorship, error) {
	mentorName := strings.TrimSpace(in.MentorName)
	title := strings.TrimSpace(in.Title)
	if mentorName == "" || title == "" {
		return nil, fmt.Errorf("%w: mentorName and title are required", domain.ErrValidation)
	}
	if in.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", domain.ErrValidation)
	}
	capacity := in.Capacity
	if capacity == 0 {
		capacity = defaultMentorshipCapacity
	}

	expertise := make([]string, 0, len(in.Expertise))
	for _, e := range in.Expertise {
		if e = strings.TrimSpace(e); e != "" {
			expertise = append(expertise, e)
		}
	}

	m, err := s.mentorships.Create(ctx, &domain.Mentorship{
		MentorID:   in.MentorID,
		MentorName: mentorName,
		Title:      title,
		Expertise:  expertise,
		Capacity:   capacity,
		Bio:        in.Bio,
		Location:   in.Location,
		IsRemote:   in.IsRemote,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create mentorship: %w", err)
	}

	s.activity.Enqueue(ports.ActivityInput{
		UserID:      in.MentorID,
		Type:        domain.ActivityMentorship,
		Description: "Published mentorship " + title,
		Ref:         m.ID,
	})
	return m, nil
}

func (s *mentorshipService) List(ctx context.Context) ([]*domain.Mentorship, error) {
	ms, err := s.mentorships.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mentorships: %w", err)
	}
	return ms, nil
}

func (s *mentorshipService) Request(ctx context.Context, in ports.RequestMentorshipInput) (*domain.MentorshipRequest, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", domain.ErrValidation)
	}

	m, err := s.mentorships.FindByID(ctx, in.MentorshipID)
	if err != nil {
		return nil, fmt.Errorf("request mentorship: %w", err)
	}
	if m.MentorID == in.StudentID {
		return nil, fmt.Errorf("%w: cannot request your own mentorship", domain.ErrValidation)
	}

	student, err := s.users.FindByID(ctx, in.StudentID)
	if err != nil {
		return nil, fmt.Errorf("request mentorship: %w", err)
	}

	req, err := s.mentorships.CreateRequest(ctx, &domain.MentorshipRequest{
		MentorshipID: m.ID,
		MentorID:     m.MentorID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		Topic:        topic,
		Message:      strings.TrimSpace(in.Message),
		Status:       domain.MentorshipPending,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("request mentorship: %w", err)
	}

	s.activity.Enqueue(ports.ActivityInput{
		UserID:      student.ID,
		Type:        domain.ActivityMentorship,
		Description: "Requested mentorship from " + m.MentorName,
		Ref:         m.ID,
	})
	return req, nil
}

func (s *mentorshipService) PendingRequests(ctx context.Context, mentorID string) ([]*domain.MentorshipRequest, error) {
	reqs, err := s.mentorships.PendingRequests(ctx, mentorID, pendingRequestsLimit)
	if err != nil {
		return nil, fmt.Errorf("pending requests: %w", err)
	}
	return reqs, nil
}

// Respond accepts or declines a pending request. Only the addressed mentor may respond.
func (s *mentorshipService) Respond(ctx context.Context, requestID, mentorID, response string) (*domain.MentorshipRequest, error) {
	var status domain.MentorshipStatus
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "accept":
		status = domain.MentorshipAccepted
	case "decline":
		status = domain.MentorshipDeclined
	default:
		return nil, fmt.Errorf("%w: response must be accept or decline", domain.ErrValidation)
	}

	req, err := s.mentorships.Respond(ctx, requestID, mentorID, status)
	if err != nil {
		return nil, fmt.Errorf("respond to request: %w", err)
	}

	if status == domain.MentorshipAccepted {
		s.activity.Enqueue(ports.ActivityInput{
			UserID:      mentorID,
			Type:        domain.ActivityMentorship,
			Description: "Accepted mentorship request from " + req.StudentName,
			Ref:         req.ID,
		})
	}
	s.log.Info().Str("request_id", req.ID).Str("status", string(status)).Msg("mentorship request answered")
	return req, nil
}
