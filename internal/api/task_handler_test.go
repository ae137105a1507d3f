package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/store"
)

var testActor = service.Actor{ID: 1, Role: domain.RoleStandard}

// newTaskRouter mounts the handler on a chi router so path parameters
// resolve the same way they do in production.
func newTaskRouter(svc service.TaskService) http.Handler {
	h := NewTaskHandler(svc)
	r := chi.NewRouter()
	r.Post("/api/tasks", h.Create)
	r.Get("/api/tasks", h.List)
	r.Get("/api/tasks/{id}", h.Get)
	r.Put("/api/tasks/{id}", h.Update)
	r.Delete("/api/tasks/{id}", h.Delete)
	return r
}

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:          42,
		Title:       "Write release notes",
		Description: "Summarize the changes since the last tag",
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityMedium,
		CreatedBy:   1,
	}
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateTaskInput"), testActor).
			Return(sampleTask(), nil)

		body := `{"title":"Write release notes","description":"Summarize the changes since the last tag"}`
		r := withActor(httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body)), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "medium", resp.Priority)
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)

		body := `{"description":"No title"}`
		r := withActor(httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body)), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("forbidden assignment maps to 403", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("Create", mock.Anything, mock.Anything, testActor).
			Return(nil, service.NewTaskServiceError("create_task", "only elevated actors can assign tasks", domain.ErrForbidden))

		body := `{"title":"T","description":"D","assigned_to":7}`
		r := withActor(httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body)), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)

		body := `{"title":"T","description":"D"}`
		r := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTaskHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("Get", mock.Anything, int64(42)).Return(sampleTask(), nil)

		r := withActor(httptest.NewRequest(http.MethodGet, "/api/tasks/42", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("Get", mock.Anything, int64(99)).
			Return(nil, service.NewTaskServiceError("get_task", "task not found", store.ErrTaskNotFound))

		r := withActor(httptest.NewRequest(http.MethodGet, "/api/tasks/99", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Task not found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)

		r := withActor(httptest.NewRequest(http.MethodGet, "/api/tasks/abc", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestTaskHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("plain listing", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("List", mock.Anything, store.TaskFilter{}).
			Return([]domain.TaskProjection{sampleTask().Project()}, nil)

		r := withActor(httptest.NewRequest(http.MethodGet, "/api/tasks", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var resp []domain.TaskProjection
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, int64(42), resp[0].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		status := domain.TaskStatusCompleted
		svc.On("List", mock.Anything, store.TaskFilter{Status: &status}).
			Return([]domain.TaskProjection{}, nil)

		r := withActor(httptest.NewRequest(http.MethodGet, "/api/tasks?status=completed", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown status value", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)

		r := withActor(httptest.NewRequest(http.MethodGet, "/api/tasks?status=archived", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("negative offset", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)

		r := withActor(httptest.NewRequest(http.MethodGet, "/api/tasks?offset=-1", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("partial update", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		updated := sampleTask()
		updated.Status = domain.TaskStatusInProgress
		svc.On("Update", mock.Anything, int64(42), mock.AnythingOfType("service.UpdateTaskInput"), testActor).
			Run(func(args mock.Arguments) {
				patch := args.Get(2).(service.UpdateTaskInput)
				require.NotNil(t, patch.Status)
				assert.Equal(t, domain.TaskStatusInProgress, *patch.Status)
				assert.Nil(t, patch.Title)
			}).
			Return(updated, nil)

		body := `{"status":"in_progress"}`
		r := withActor(httptest.NewRequest(http.MethodPut, "/api/tasks/42", strings.NewReader(body)), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var resp TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "in_progress", resp.Status)
	})

	t.Run("invalid transition maps to 400", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("Update", mock.Anything, int64(42), mock.Anything, testActor).
			Return(nil, service.NewTaskServiceError("update_task", "invalid status change", domain.ErrInvalidTransition))

		body := `{"status":"pending"}`
		r := withActor(httptest.NewRequest(http.MethodPut, "/api/tasks/42", strings.NewReader(body)), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid status transition")
	})

	t.Run("unknown status value is rejected before the service", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)

		body := `{"status":"archived"}`
		r := withActor(httptest.NewRequest(http.MethodPut, "/api/tasks/42", strings.NewReader(body)), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("Update", mock.Anything, int64(42), mock.Anything, testActor).
			Return(nil, service.NewTaskServiceError("update_task", "only the creator or an elevated actor can update a task", domain.ErrForbidden))

		body := `{"title":"New title"}`
		r := withActor(httptest.NewRequest(http.MethodPut, "/api/tasks/42", strings.NewReader(body)), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("Delete", mock.Anything, int64(42), testActor).Return(nil)

		r := withActor(httptest.NewRequest(http.MethodDelete, "/api/tasks/42", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc := new(MockTaskService)
		svc.On("Delete", mock.Anything, int64(99), testActor).
			Return(service.NewTaskServiceError("delete_task", "task not found", store.ErrTaskNotFound))

		r := withActor(httptest.NewRequest(http.MethodDelete, "/api/tasks/99", nil), testActor)
		w := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
