package domain

// TaskProjection is the subset of Task fields cached and serialized for
// transport, distinct from the full persisted record.
type TaskProjection struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CreatedBy   int64        `json:"created_by"`
	AssignedTo  *int64       `json:"assigned_to"`
}

// Project returns the task's cache/transport projection.
func (t *Task) Project() TaskProjection {
	return TaskProjection{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		CreatedBy:   t.CreatedBy,
		AssignedTo:  t.AssignedTo,
	}
}
