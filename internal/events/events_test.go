package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/domain"
)

func TestNewTaskEventWireShape(t *testing.T) {
	assigned := int64(3)
	ev, err := NewTaskEvent(TypeTaskCreated, domain.TaskProjection{
		ID:          1,
		Title:       "Write report",
		Description: "Quarterly numbers",
		Priority:    domain.TaskPriorityHigh,
		Status:      domain.TaskStatusPending,
		CreatedBy:   7,
		AssignedTo:  &assigned,
	})
	require.NoError(t, err)

	assert.Equal(t, TypeTaskCreated, ev.Type)
	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.False(t, ev.CreatedAt.IsZero())

	var decoded struct {
		Event string                `json:"event"`
		Task  domain.TaskProjection `json:"task"`
	}
	require.NoError(t, json.Unmarshal(ev.Payload, &decoded))
	assert.Equal(t, "task_created", decoded.Event)
	assert.Equal(t, int64(1), decoded.Task.ID)
	assert.Equal(t, domain.TaskStatusPending, decoded.Task.Status)
	require.NotNil(t, decoded.Task.AssignedTo)
	assert.Equal(t, int64(3), *decoded.Task.AssignedTo)
}

func TestNewTaskEventDeletedPayload(t *testing.T) {
	ev, err := NewTaskEvent(TypeTaskDeleted, DeletedTask{ID: 9, Title: "Old task"})
	require.NoError(t, err)

	var decoded struct {
		Event string      `json:"event"`
		Task  DeletedTask `json:"task"`
	}
	require.NoError(t, json.Unmarshal(ev.Payload, &decoded))
	assert.Equal(t, "task_deleted", decoded.Event)
	assert.Equal(t, DeletedTask{ID: 9, Title: "Old task"}, decoded.Task)
}
