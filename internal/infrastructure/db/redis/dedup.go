package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alumnihub/alumni-network/internal/core/domain"
)

const dedupTTL = 24 * time.Hour

// DedupChecker provides idempotency checks for the activity feed backed by Redis.
// Key format: activity:<user_id>:<type>:<ref>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client, ttl: dedupTTL}
}

// Claim sets the key only if it is absent and reports whether this call created it.
func (d *DedupChecker) Claim(ctx context.Context, userID string, typ domain.ActivityType, ref string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupKey(userID, typ, ref), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	return ok, nil
}

func dedupKey(userID string, typ domain.ActivityType, ref string) string {
	return fmt.Sprintf("activity:%s:%s:%s", userID, typ, ref)
}
