package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/events"
	"github.com/taskboard/taskboard-api/internal/store"
)

// MockTaskRepository is a testify mock for the TaskRepository interface.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepository) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	if t := args.Get(0); t != nil {
		return t.([]*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a testify mock for the UserRepository interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeTaskCache is an in-memory TaskCache for asserting cache
// synchronization without a Redis backend.
type fakeTaskCache struct {
	entries map[int64]domain.TaskProjection
	list    []domain.TaskProjection
	hasList bool
}

func newFakeTaskCache() *fakeTaskCache {
	return &fakeTaskCache{entries: make(map[int64]domain.TaskProjection)}
}

func (c *fakeTaskCache) Get(_ context.Context, id int64) (domain.TaskProjection, bool) {
	p, ok := c.entries[id]
	return p, ok
}

func (c *fakeTaskCache) Put(_ context.Context, projection domain.TaskProjection) {
	c.entries[projection.ID] = projection
}

func (c *fakeTaskCache) Invalidate(_ context.Context, id int64) {
	delete(c.entries, id)
}

func (c *fakeTaskCache) GetList(_ context.Context) ([]domain.TaskProjection, bool) {
	return c.list, c.hasList
}

func (c *fakeTaskCache) PutList(_ context.Context, projections []domain.TaskProjection) {
	c.list = projections
	c.hasList = true
}

func (c *fakeTaskCache) InvalidateList(_ context.Context) {
	c.list = nil
	c.hasList = false
}

// capturePublisher records published events and optionally fails.
type capturePublisher struct {
	events []*events.Event
	err    error
}

func (p *capturePublisher) Publish(event *events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
