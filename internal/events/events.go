package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types broadcast to live subscribers.
const (
	TypeTaskCreated = "task_created"
	TypeTaskUpdated = "task_updated"
	TypeTaskDeleted = "task_deleted"
)

// DeletedTask is the reduced payload carried by task_deleted events.
type DeletedTask struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// frame is the wire shape delivered to subscribers:
// {"event": "...", "task": {...}}.
type frame struct {
	Event string `json:"event"`
	Task  any    `json:"task"`
}

// Event is a notification ready for fan-out. The payload is serialized
// once, at creation, so a single broadcast delivers identical bytes to
// every connection.
type Event struct {
	// ID is a unique identifier for this event, used for log correlation.
	ID uuid.UUID

	// Type is one of the Type* constants.
	Type string

	// Payload is the serialized wire frame.
	Payload []byte

	// CreatedAt is the timestamp when the event was created.
	CreatedAt time.Time
}

// NewTaskEvent builds an Event of the given type carrying the task
// payload (a projection for create/update, a DeletedTask for delete).
func NewTaskEvent(eventType string, task any) (*Event, error) {
	payload, err := json.Marshal(frame{Event: eventType, Task: task})
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}, nil
}
