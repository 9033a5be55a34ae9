package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnihub/alumni-network/internal/api/metrics"
	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	// Claim atomically records the entry and reports whether it was new.
	Claim(ctx context.Context, userID string, typ domain.ActivityType, ref string) (bool, error)
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, dedup: dedup, log: log}
}

// Record deduplicates and persists a single feed entry.
func (s *activityService) Record(ctx context.Context, in ports.ActivityInput) error {
	start := time.Now()

	if in.UserID == "" || in.Type == "" {
		metrics.ActivitiesErrorsTotal.WithLabelValues("invalid_input").Inc()
		return fmt.Errorf("record activity: %w: user and type are required", domain.ErrValidation)
	}

	// Entries without a ref describe one-off actions and are never deduplicated.
	if in.Ref != "" {
		fresh, err := s.dedup.Claim(ctx, in.UserID, in.Type, in.Ref)
		switch {
		case err != nil:
			metrics.ActivitiesDedupTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("dedup check failed, processing anyway")
		case !fresh:
			metrics.ActivitiesDedupTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("user_id", in.UserID).Str("type", string(in.Type)).Str("ref", in.Ref).Msg("duplicate activity skipped")
			return nil
		default:
			metrics.ActivitiesDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	activity := &domain.Activity{
		UserID:      in.UserID,
		Type:        in.Type,
		Description: in.Description,
		Ref:         in.Ref,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, activity); err != nil {
		metrics.ActivitiesErrorsTotal.WithLabelValues("insert_failed").Inc()
		metrics.ActivityProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("record activity: %w", err)
	}

	metrics.ActivitiesProcessedTotal.WithLabelValues(string(in.Type)).Inc()
	metrics.ActivityProcessingDuration.WithLabelValues(string(in.Type)).Observe(time.Since(start).Seconds())

	s.log.Debug().
		Str("user_id", in.UserID).
		Str("type", string(in.Type)).
		Msg("activity recorded")

	return nil
}
