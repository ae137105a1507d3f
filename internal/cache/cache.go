// Package cache defines the task projection cache consumed by the
// lifecycle service. The cache is never the source of truth: every
// operation is best-effort, and implementations swallow backend failures
// (logging them) rather than surfacing errors to callers.
package cache

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// TaskCache is a read-through cache of task projections keyed by task ID,
// plus a single aggregate entry for the full listing. Writes refresh the
// single-task entry and invalidate the aggregate; deletes remove both.
type TaskCache interface {
	// Get returns the cached projection for the task and whether it was
	// present and unexpired. The caller populates the cache on a miss.
	Get(ctx context.Context, id int64) (domain.TaskProjection, bool)

	// Put stores the projection under the task's ID with the configured
	// TTL, overwriting any existing entry.
	Put(ctx context.Context, projection domain.TaskProjection)

	// Invalidate removes the entry for the task unconditionally.
	// Absent entries are not an error.
	Invalidate(ctx context.Context, id int64)

	// GetList returns the cached aggregate listing and whether it was
	// present and unexpired.
	GetList(ctx context.Context) ([]domain.TaskProjection, bool)

	// PutList stores the aggregate listing, overwriting any existing entry.
	PutList(ctx context.Context, projections []domain.TaskProjection)

	// InvalidateList removes the aggregate listing entry unconditionally.
	// It is called on every create, update, or delete; the list is
	// invalidated wholesale, never partially updated.
	InvalidateList(ctx context.Context)
}
