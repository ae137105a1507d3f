package domain

import (
	"fmt"
	"time"
)

// Task-specific validation errors. All of them wrap ErrValidation so
// callers can classify without enumerating.
var (
	// ErrTitleEmpty is returned when a task title is empty.
	ErrTitleEmpty = fmt.Errorf("%w: task title cannot be empty", ErrValidation)

	// ErrTitleTooLong is returned when a task title exceeds the column bound.
	ErrTitleTooLong = fmt.Errorf("%w: task title cannot exceed 255 characters", ErrValidation)

	// ErrDescriptionEmpty is returned when a task description is empty.
	ErrDescriptionEmpty = fmt.Errorf("%w: task description cannot be empty", ErrValidation)

	// ErrInvalidStatus is returned when a status value is not one of the
	// known variants.
	ErrInvalidStatus = fmt.Errorf("%w: invalid task status", ErrValidation)

	// ErrInvalidPriority is returned when a priority value is not one of
	// the known variants.
	ErrInvalidPriority = fmt.Errorf("%w: invalid task priority", ErrValidation)
)

// maxTitleLength matches the VARCHAR(255) bound of the tasks.title column.
const maxTitleLength = 255

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values. A task starts as pending and only ever
// advances; completed is terminal.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ParseTaskStatus converts a raw string into a TaskStatus.
// Returns ErrInvalidStatus for unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return TaskStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Valid reports whether the status is one of the known variants.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ValidateTransition checks whether moving from s to next is an allowed
// edge of the status state machine:
//
//	pending     -> in_progress, completed
//	in_progress -> completed
//	completed   -> (terminal)
//
// The machine is strict-advance-only: a same-status "transition" is not an
// idempotent no-op, it is rejected like any other disallowed edge.
func (s TaskStatus) ValidateTransition(next TaskStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}

	switch s {
	case TaskStatusPending:
		if next == TaskStatusInProgress || next == TaskStatusCompleted {
			return nil
		}
	case TaskStatusInProgress:
		if next == TaskStatusCompleted {
			return nil
		}
	case TaskStatusCompleted:
		return fmt.Errorf("%w: cannot change status after completion", ErrInvalidTransition)
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
}

// TaskPriority represents the urgency classification of a task.
// Unlike status it has no transition constraints.
type TaskPriority string

// Possible task priority values.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ParseTaskPriority converts a raw string into a TaskPriority.
// Returns ErrInvalidPriority for unknown values.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return TaskPriority(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// Valid reports whether the priority is one of the known variants.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task represents a unit of work tracked by the system.
// The ID is assigned by the store on creation and immutable thereafter,
// as are CreatedBy and CreatedAt.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedBy   int64        `json:"created_by"`
	AssignedTo  *int64       `json:"assigned_to,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask builds a new pending Task owned by createdBy. An empty priority
// defaults to medium. The ID is zero until the store assigns one.
// Returns an error if validation fails.
func NewTask(title, description string, priority TaskPriority, createdBy int64) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		Priority:    priority,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrTitleEmpty
	}
	if len(t.Title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if t.Description == "" {
		return ErrDescriptionEmpty
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedBy == 0 {
		return fmt.Errorf("%w: task creator cannot be empty", ErrValidation)
	}
	return nil
}
