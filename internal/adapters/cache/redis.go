// Package cache stores the last good snapshot in Redis so a dead upstream
// does not blank the dashboard.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtpulse/courtpulse/internal/domain/model"
)

const (
	snapshotKey = "courtpulse:snapshot:last_good"
	defaultTTL  = 10 * time.Minute
)

// ErrNoSnapshot reports that no cached snapshot is available.
var ErrNoSnapshot = errors.New("no cached snapshot")

// Option applies a configuration option to the SnapshotCache.
type Option func(*SnapshotCache)

// WithTTL overrides how long a cached snapshot stays usable. A stale
// snapshot is worse than none once games have moved on.
func WithTTL(ttl time.Duration) Option {
	return func(c *SnapshotCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// SnapshotCache wraps a Redis client with snapshot get/set semantics.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a snapshot cache over the given Redis client.
func New(client *redis.Client, opts ...Option) *SnapshotCache {
	c := &SnapshotCache{
		client: client,
		ttl:    defaultTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Store saves the snapshot as the last good one.
func (c *SnapshotCache) Store(ctx context.Context, snap *model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Load returns the last good snapshot, or ErrNoSnapshot when the key is
// missing or expired.
func (c *SnapshotCache) Load(ctx context.Context) (*model.Snapshot, error) {
	payload, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return &snap, nil
}
