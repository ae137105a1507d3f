package service

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// NewTaskRepositoryAdapter creates a new adapter that allows a
// store.TaskStore to be used where a TaskRepository is expected. Each
// mutation runs in its own transaction so the commit point is explicit
// before any cache or notification side effects fire.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		taskStore: taskStore,
		db:        db,
	}
}

// taskRepositoryAdapter adapts a store.TaskStore to the TaskRepository interface.
type taskRepositoryAdapter struct {
	taskStore store.TaskStore
	db        *sql.DB
}

// Create implements TaskRepository.Create.
func (a *taskRepositoryAdapter) Create(
	ctx context.Context,
	task *domain.Task,
) (*domain.Task, error) {
	var created *domain.Task
	err := store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		created, err = a.taskStore.WithTx(tx).Create(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID implements TaskRepository.GetByID.
func (a *taskRepositoryAdapter) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return a.taskStore.GetByID(ctx, id)
}

// List implements TaskRepository.List.
func (a *taskRepositoryAdapter) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	return a.taskStore.List(ctx, filter)
}

// Update implements TaskRepository.Update.
func (a *taskRepositoryAdapter) Update(
	ctx context.Context,
	task *domain.Task,
) (*domain.Task, error) {
	var updated *domain.Task
	err := store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		updated, err = a.taskStore.WithTx(tx).Update(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements TaskRepository.Delete.
func (a *taskRepositoryAdapter) Delete(ctx context.Context, id int64) error {
	return store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		return a.taskStore.WithTx(tx).Delete(ctx, id)
	})
}
