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

const resourcePrefix = "resources"

type resourceService struct {
	resources ports.ResourceRepository
	users     ports.CredentialStore
	roles     ports.RoleLookup
	files     ports.FileStore
	activity  ports.ActivityPublisher
	log       zerolog.Logger
}

// NewResourceService returns a ResourceService implementation. roles is consulted
// whenever an admin acts on a resource they did not author.
func NewResourceService(
	resources ports.ResourceRepository,
	users ports.CredentialStore,
	roles ports.RoleLookup,
	files ports.FileStore,
	activity ports.ActivityPublisher,
	log zerolog.Logger,
) ports.ResourceService {
	return &resourceService{
		resources: resources,
		users:     users,
		roles:     roles,
		files:     files,
		activity:  activity,
		log:       log,
	}
}

func (s *resourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	rs, err := s.resources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return rs, nil
}

func (s *resourceService) Get(ctx context.Context, id string) (*domain.Resource, error) {
	r, err := s.resources.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return r, nil
}

func validateResource(in ports.ResourceInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Type) == "" {
		return fmt.Errorf("%w: title, description, category and type are required", domain.ErrValidation)
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// storeFile saves the optional attachment of a resource form onto r.
func (s *resourceService) storeFile(ctx context.Context, r *domain.Resource, up *ports.Upload) (string, error) {
	if up == nil || s.files == nil {
		return "", nil
	}
	key, err := s.files.Save(ctx, resourcePrefix, *up)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(resourcePrefix, "error").Inc()
		return "", err
	}
	metrics.UploadsTotal.WithLabelValues(resourcePrefix, "success").Inc()
	r.FileKey = key
	r.FileURL = s.files.URL(key)
	r.FileName = up.Filename
	r.FileSize = up.Size
	return key, nil
}

func (s *resourceService) Create(ctx context.Context, author domain.Identity, in ports.ResourceInput) (*domain.Resource, error) {
	if err := validateResource(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, author.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	now := time.Now().UTC()
	r := &domain.Resource{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Type:        strings.TrimSpace(in.Type),
		Tags:        cleanTags(in.Tags),
		AuthorID:    user.ID,
		AuthorName:  user.Name,
		AuthorRole:  user.Role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	key, err := s.storeFile(ctx, r, in.File)
	if err != nil {
		return nil, fmt.Errorf("create resource: store file: %w", err)
	}

	created, err := s.resources.Create(ctx, r)
	if err != nil {
		if key != "" {
			_ = s.files.Delete(ctx, key)
		}
		return nil, fmt.Errorf("create resource: %w", err)
	}

	s.activity.Enqueue(ports.ActivityInput{
		UserID:      user.ID,
		Type:        domain.ActivityResource,
		Description: "Shared resource " + created.Title,
		Ref:         created.ID,
	})
	return created, nil
}

// authorize allows the author, or a caller whose stored role is still admin.
func (s *resourceService) authorize(ctx context.Context, caller domain.Identity, r *domain.Resource) error {
	if r.AuthorID == caller.SubjectID {
		return nil
	}
	if caller.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	role, err := s.roles.CurrentRole(ctx, caller.SubjectID)
	if err != nil {
		return fmt.Errorf("check role: %w", err)
	}
	if role != domain.RoleAdmin {
		s.log.Warn().Str("user_id", caller.SubjectID).Msg("stale admin token rejected")
		return domain.ErrForbidden
	}
	return nil
}

func (s *resourceService) Update(ctx context.Context, caller domain.Identity, id string, in ports.ResourceInput) (*domain.Resource, error) {
	if err := validateResource(in); err != nil {
		return nil, err
	}

	r, err := s.resources.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	if err := s.authorize(ctx, caller, r); err != nil {
		return nil, err
	}

	oldKey := r.FileKey
	r.Title = strings.TrimSpace(in.Title)
	r.Description = strings.TrimSpace(in.Description)
	r.Category = strings.TrimSpace(in.Category)
	r.Type = strings.TrimSpace(in.Type)
	r.Tags = cleanTags(in.Tags)
	r.UpdatedAt = time.Now().UTC()

	newKey, err := s.storeFile(ctx, r, in.File)
	if err != nil {
		return nil, fmt.Errorf("update resource: store file: %w", err)
	}

	updated, err := s.resources.Update(ctx, r)
	if err != nil {
		if newKey != "" {
			_ = s.files.Delete(ctx, newKey)
		}
		return nil, fmt.Errorf("update resource: %w", err)
	}

	if newKey != "" && oldKey != "" {
		if err := s.files.Delete(ctx, oldKey); err != nil {
			s.log.Warn().Err(err).Str("key", oldKey).Msg("failed to remove replaced resource file")
		}
	}
	return updated, nil
}

func (s *resourceService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	r, err := s.resources.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if err := s.authorize(ctx, caller, r); err != nil {
		return err
	}

	if err := s.resources.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	if r.FileKey != "" && s.files != nil {
		if err := s.files.Delete(ctx, r.FileKey); err != nil {
			s.log.Warn().Err(err).Str("key", r.FileKey).Msg("failed to remove resource file")
		}
	}
	s.log.Info().Str("resource_id", id).Str("by", caller.SubjectID).Msg("resource deleted")
	return nil
}

func (s *resourceService) Download(ctx context.Context, id string) (*ports.Download, error) {
	r, err := s.resources.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("download resource: %w", err)
	}
	if r.FileKey == "" || s.files == nil {
		return nil, domain.ErrFileNotFound
	}

	body, err := s.files.Open(ctx, r.FileKey)
	if err != nil {
		return nil, fmt.Errorf("download resource: %w", err)
	}
	name := r.FileName
	if name == "" {
		name = r.Title
	}
	return &ports.Download{Name: name, Body: body}, nil
}

func (s *resourceService) ToggleBookmark(ctx context.Context, userID, resourceID string) (bool, error) {
	if _, err := s.resources.FindByID(ctx, resourceID); err != nil {
		return false, fmt.Errorf("bookmark resource: %w", err)
	}
	on, err := s.resources.ToggleBookmark(ctx, userID, resourceID)
	if err != nil {
		return false, fmt.Errorf("bookmark resource: %w", err)
	}
	return on, nil
}
