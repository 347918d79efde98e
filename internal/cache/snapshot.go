package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/broncodesk/ticket-tracker/internal/domain"
)

const generationKey = "tickets:snapshot:gen"

// SnapshotCache keeps per-caller visible-set snapshots in Redis. Every
// successful mutation bumps a generation counter, which orphans all
// cached snapshots at once; orphaned keys age out via TTL.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache constructs the cache.
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached snapshot for a caller, with a hit flag. Cache
// failures degrade to a miss; the store stays authoritative.
func (c *SnapshotCache) Get(ctx context.Context, callerID string) ([]domain.Ticket, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	key, err := c.snapshotKey(ctx, callerID)
	if err != nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("snapshot cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(payload, &tickets); err != nil {
		c.logger.Warn("snapshot cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return tickets, true
}

// Put stores a caller's snapshot under the current generation.
func (c *SnapshotCache) Put(ctx context.Context, callerID string, tickets []domain.Ticket) {
	if c == nil || c.client == nil {
		return
	}
	key, err := c.snapshotKey(ctx, callerID)
	if err != nil {
		return
	}
	payload, err := json.Marshal(tickets)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("snapshot cache write failed", zap.Error(err))
	}
}

// InvalidateAll drops every cached snapshot by advancing the generation.
func (c *SnapshotCache) InvalidateAll(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn("snapshot invalidation failed", zap.Error(err))
		return err
	}
	return nil
}

// Ping reports whether the cache backend is reachable.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *SnapshotCache) snapshotKey(ctx context.Context, callerID string) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return "", err
		}
		gen = "0"
	}
	return "tickets:snapshot:" + gen + ":" + callerID, nil
}
