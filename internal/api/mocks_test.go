package api

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/taskboard/taskboard-api/internal/api/shared"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/store"
)

// MockTaskService is a testify mock for the service.TaskService interface.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(
	ctx context.Context,
	input service.CreateTaskInput,
	actor service.Actor,
) (*domain.Task, error) {
	args := m.Called(ctx, input, actor)
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]domain.TaskProjection, error) {
	args := m.Called(ctx, filter)
	if t := args.Get(0); t != nil {
		return t.([]domain.TaskProjection), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) Update(
	ctx context.Context,
	id int64,
	patch service.UpdateTaskInput,
	actor service.Actor,
) (*domain.Task, error) {
	args := m.Called(ctx, id, patch, actor)
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id int64, actor service.Actor) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

// MockUserService is a testify mock for the service.UserService interface.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(
	ctx context.Context,
	input service.RegisterUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, input)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// withActor returns a copy of the request carrying an authenticated
// actor, as the auth middleware would.
func withActor(r *http.Request, actor service.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), shared.ActorContextKey, actor)
	return r.WithContext(ctx)
}
