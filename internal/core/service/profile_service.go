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
	defaultPageLimit = 20
	maxPageLimit     = 100

	resumePrefix = "resumes"
)

type profileService struct {
	users    ports.UserRepository
	files    ports.FileStore
	activity ports.ActivityPublisher
	log      zerolog.Logger
}

// NewProfileService returns a ProfileService implementation.
func NewProfileService(
	users ports.UserRepository,
	files ports.FileStore,
	activity ports.ActivityPublisher,
	log zerolog.Logger,
) ports.ProfileService {
	return &profileService{users: users, files: files, activity: activity, log: log}
}

func (s *profileService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// Update applies the non-nil fields of the change and keeps the rest.
func (s *profileService) Update(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	upd := in.Update

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		upd.Name = &name
	}
	if upd.Email != nil {
		email := domain.NormalizeEmail(*upd.Email)
		if validate.Var(email, "required,email") != nil {
			return nil, fmt.Errorf("%w: email must be a valid email", domain.ErrValidation)
		}
		upd.Email = &email
	}
	if upd.GraduationYear != nil {
		if y := *upd.GraduationYear; y < 1900 || y > time.Now().Year()+10 {
			return nil, fmt.Errorf("%w: graduation year %d out of range", domain.ErrValidation, y)
		}
	}

	var avatarKey string
	if in.Avatar != nil && s.files != nil {
		key, err := s.files.Save(ctx, avatarPrefix, *in.Avatar)
		if err != nil {
			metrics.UploadsTotal.WithLabelValues(avatarPrefix, "error").Inc()
			return nil, fmt.Errorf("update profile: store avatar: %w", err)
		}
		metrics.UploadsTotal.WithLabelValues(avatarPrefix, "success").Inc()
		avatarKey = key
		url := s.files.URL(key)
		upd.ProfileImage = &url
	}

	if upd.Empty() {
		return s.Get(ctx, id)
	}

	user, err := s.users.UpdateProfile(ctx, id, upd)
	if err != nil {
		if avatarKey != "" {
			_ = s.files.Delete(ctx, avatarKey)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.activity.Enqueue(ports.ActivityInput{
		UserID:      id,
		Type:        domain.ActivityProfile,
		Description: "Updated profile information",
	})
	return user, nil
}

func (s *profileService) List(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	for _, r := range in.Roles {
		if !domain.ValidRole(r) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, r)
		}
	}

	users, total, err := s.users.List(ctx, ports.ListUsersFilter{
		Roles:          in.Roles,
		Search:         strings.TrimSpace(in.Search),
		Company:        strings.TrimSpace(in.Company),
		Location:       strings.TrimSpace(in.Location),
		GraduationYear: in.GraduationYear,
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListUsersResult{
		Items:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// StoreResume saves a student's resume and returns its URL.
func (s *profileService) StoreResume(ctx context.Context, userID string, up ports.Upload) (string, error) {
	if s.files == nil {
		return "", fmt.Errorf("store resume: file storage is not configured")
	}
	key, err := s.files.Save(ctx, resumePrefix, up)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(resumePrefix, "error").Inc()
		return "", fmt.Errorf("store resume: %w", err)
	}
	metrics.UploadsTotal.WithLabelValues(resumePrefix, "success").Inc()
	s.log.Info().Str("user_id", userID).Str("key", key).Msg("resume stored")
	return s.files.URL(key), nil
}
