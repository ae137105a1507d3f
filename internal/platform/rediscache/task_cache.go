// Package rediscache implements the task projection cache on Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard-api/internal/cache"
	"github.com/taskboard/taskboard-api/internal/domain"
)

// Cache key scheme. Single tasks live under task:<id>; the aggregate
// listing under a single well-known key.
const (
	taskKeyPrefix = "task:"
	listKey       = "tasks:all"
)

// TaskCache is the Redis-backed implementation of cache.TaskCache.
// All failures are logged and swallowed: an unreachable Redis degrades
// reads to the store but never fails a request.
type TaskCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a TaskCache on the given client. Projections expire after
// ttl; the aggregate listing uses the same expiry.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *TaskCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskCache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "task_cache")),
	}
}

// Ensure TaskCache implements cache.TaskCache
var _ cache.TaskCache = (*TaskCache)(nil)

func taskKey(id int64) string {
	return fmt.Sprintf("%s%d", taskKeyPrefix, id)
}

// Get implements cache.TaskCache.Get
func (c *TaskCache) Get(ctx context.Context, id int64) (domain.TaskProjection, bool) {
	var projection domain.TaskProjection

	data, err := c.client.Get(ctx, taskKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("failed to read task cache entry",
				"task_id", id,
				"error", err)
		}
		return projection, false
	}

	if err := json.Unmarshal(data, &projection); err != nil {
		// A corrupt entry is as good as a miss; drop it.
		c.logger.Warn("failed to decode task cache entry, evicting",
			"task_id", id,
			"error", err)
		c.Invalidate(ctx, id)
		return domain.TaskProjection{}, false
	}

	return projection, true
}

// Put implements cache.TaskCache.Put
func (c *TaskCache) Put(ctx context.Context, projection domain.TaskProjection) {
	data, err := json.Marshal(projection)
	if err != nil {
		c.logger.Warn("failed to encode task cache entry",
			"task_id", projection.ID,
			"error", err)
		return
	}

	if err := c.client.Set(ctx, taskKey(projection.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to store task cache entry",
			"task_id", projection.ID,
			"error", err)
	}
}

// Invalidate implements cache.TaskCache.Invalidate
func (c *TaskCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, taskKey(id)).Err(); err != nil {
		c.logger.Warn("failed to delete task cache entry",
			"task_id", id,
			"error", err)
	}
}

// GetList implements cache.TaskCache.GetList
func (c *TaskCache) GetList(ctx context.Context) ([]domain.TaskProjection, bool) {
	data, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("failed to read task list cache entry", "error", err)
		}
		return nil, false
	}

	var projections []domain.TaskProjection
	if err := json.Unmarshal(data, &projections); err != nil {
		c.logger.Warn("failed to decode task list cache entry, evicting", "error", err)
		c.InvalidateList(ctx)
		return nil, false
	}

	return projections, true
}

// PutList implements cache.TaskCache.PutList
func (c *TaskCache) PutList(ctx context.Context, projections []domain.TaskProjection) {
	data, err := json.Marshal(projections)
	if err != nil {
		c.logger.Warn("failed to encode task list cache entry", "error", err)
		return
	}

	if err := c.client.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to store task list cache entry", "error", err)
	}
}

// InvalidateList implements cache.TaskCache.InvalidateList
func (c *TaskCache) InvalidateList(ctx context.Context) {
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		c.logger.Warn("failed to delete task list cache entry", "error", err)
	}
}
