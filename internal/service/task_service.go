package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskboard/taskboard-api/internal/cache"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/events"
	"github.com/taskboard/taskboard-api/internal/platform/logger"
	"github.com/taskboard/taskboard-api/internal/store"
)

// Actor identifies who is performing an operation and with what
// privileges. It is derived from the authenticated token, never from the
// request body.
type Actor struct {
	ID   int64
	Role domain.Role
}

// Elevated reports whether the actor holds the elevated role.
func (a Actor) Elevated() bool {
	return a.Role == domain.RoleElevated
}

// CreateTaskInput carries the caller-supplied fields for a new task.
// An empty Priority defaults to medium; Status is always pending.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	AssignedTo  *int64
}

// UpdateTaskInput is a partial update: nil fields are left unchanged.
// Assignment changes require the elevated role regardless of ownership.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
	AssignedTo  *int64
}

// TaskRepository defines the repository interface for the task service.
// Implementations wrap each mutation in its own transaction.
type TaskRepository interface {
	// Create saves a new task and returns it with the store-assigned ID.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves tasks matching the filter, ordered by ID.
	List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// Update persists the task's mutable fields.
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Delete removes a task by its ID.
	Delete(ctx context.Context, id int64) error
}

// EventPublisher hands completed lifecycle events to the notification
// fan-out. Publishing is best-effort: a full queue or stopped dispatcher
// is the publisher's problem to report, not the caller's to handle.
type EventPublisher interface {
	Publish(event *events.Event) error
}

// TaskService provides task lifecycle operations.
type TaskService interface {
	// Create makes a new pending task owned by the actor. Assigning it to
	// someone at creation requires the elevated role.
	Create(ctx context.Context, input CreateTaskInput, actor Actor) (*domain.Task, error)

	// Get retrieves a task by ID, consulting the cache first but always
	// confirming existence against the store.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves task projections matching the filter. An
	// unconstrained listing is served from the aggregate cache entry when
	// present; the projection is the shape the cache stores, so listings
	// carry no timestamps.
	List(ctx context.Context, filter store.TaskFilter) ([]domain.TaskProjection, error)

	// Update applies a partial update to a task. Only the creator or an
	// elevated actor may update; status changes must follow the
	// transition rules; assignment changes require the elevated role.
	Update(ctx context.Context, id int64, patch UpdateTaskInput, actor Actor) (*domain.Task, error)

	// Delete removes a task. Only the creator or an elevated actor may
	// delete.
	Delete(ctx context.Context, id int64, actor Actor) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	repo      TaskRepository
	cache     cache.TaskCache
	publisher EventPublisher
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	repo TaskRepository,
	taskCache cache.TaskCache,
	publisher EventPublisher,
	log *slog.Logger,
) (TaskService, error) {
	if repo == nil {
		return nil, NewTaskServiceError("new", "repository cannot be nil", domain.ErrValidation)
	}
	if taskCache == nil {
		return nil, NewTaskServiceError("new", "cache cannot be nil", domain.ErrValidation)
	}
	if publisher == nil {
		return nil, NewTaskServiceError("new", "publisher cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskServiceImpl{
		repo:      repo,
		cache:     taskCache,
		publisher: publisher,
		logger:    log.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	input CreateTaskInput,
	actor Actor,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.AssignedTo != nil && !actor.Elevated() {
		return nil, NewTaskServiceError(
			"create_task",
			"only elevated actors can assign tasks",
			domain.ErrForbidden,
		)
	}

	task, err := domain.NewTask(input.Title, input.Description, input.Priority, actor.ID)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "invalid task", err)
	}
	task.AssignedTo = input.AssignedTo

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("actor_id", actor.ID))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	// The write has committed; everything below is best-effort.
	s.cache.Put(ctx, created.Project())
	s.cache.InvalidateList(ctx)
	s.publish(ctx, events.TypeTaskCreated, created.Project())

	log.Info("task created",
		slog.Int64("task_id", created.ID),
		slog.Int64("actor_id", actor.ID))
	return created, nil
}

// Get implements TaskService.Get.
//
// A cache hit is not trusted on its own: the store is consulted again so
// that a deleted task never resurfaces from a stale entry. On a miss the
// store result is cached for subsequent reads.
func (s *taskServiceImpl) Get(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, hit := s.cache.Get(ctx, id)
	if hit {
		log.Debug("task cache hit", slog.Int64("task_id", id))
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewTaskServiceError("get_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	if !hit {
		s.cache.Put(ctx, task.Project())
	}
	return task, nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]domain.TaskProjection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Only the unconstrained listing maps onto the single aggregate cache
	// entry; filtered or paginated queries always hit the store.
	cacheable := filter.Status == nil && filter.Offset == 0 && filter.Limit == 0

	if cacheable {
		if projections, ok := s.cache.GetList(ctx); ok {
			log.Debug("task list cache hit", slog.Int("count", len(projections)))
			return projections, nil
		}
	}

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	projections := make([]domain.TaskProjection, len(tasks))
	for i, task := range tasks {
		projections[i] = task.Project()
	}
	if cacheable {
		s.cache.PutList(ctx, projections)
	}
	return projections, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch UpdateTaskInput,
	actor Actor,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Elevated() && task.CreatedBy != actor.ID {
		return nil, NewTaskServiceError(
			"update_task",
			"only the creator or an elevated actor can update a task",
			domain.ErrForbidden,
		)
	}
	if patch.AssignedTo != nil && !actor.Elevated() {
		return nil, NewTaskServiceError(
			"update_task",
			"only elevated actors can assign tasks",
			domain.ErrForbidden,
		)
	}

	if patch.Status != nil {
		if err := task.Status.ValidateTransition(*patch.Status); err != nil {
			return nil, NewTaskServiceError("update_task", "invalid status change", err)
		}
		task.Status = *patch.Status
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = patch.AssignedTo
	}
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		return nil, NewTaskServiceError("update_task", "invalid task", err)
	}

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewTaskServiceError("update_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	s.cache.Put(ctx, updated.Project())
	s.cache.InvalidateList(ctx)
	s.publish(ctx, events.TypeTaskUpdated, updated.Project())

	log.Info("task updated",
		slog.Int64("task_id", updated.ID),
		slog.Int64("actor_id", actor.ID))
	return updated, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, id int64, actor Actor) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !actor.Elevated() && task.CreatedBy != actor.ID {
		return NewTaskServiceError(
			"delete_task",
			"only the creator or an elevated actor can delete a task",
			domain.ErrForbidden,
		)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewTaskServiceError("delete_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.cache.Invalidate(ctx, id)
	s.cache.InvalidateList(ctx)
	s.publish(ctx, events.TypeTaskDeleted, events.DeletedTask{ID: task.ID, Title: task.Title})

	log.Info("task deleted",
		slog.Int64("task_id", id),
		slog.Int64("actor_id", actor.ID))
	return nil
}

// publish builds and enqueues a lifecycle event. Failures are logged and
// swallowed; the store write has already committed.
func (s *taskServiceImpl) publish(ctx context.Context, eventType string, payload any) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewTaskEvent(eventType, payload)
	if err != nil {
		log.Warn("failed to build lifecycle event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		log.Warn("failed to publish lifecycle event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()))
	}
}
