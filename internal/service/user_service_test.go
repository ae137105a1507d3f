package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service/auth"
	"github.com/taskboard/taskboard-api/internal/store"
)

func newTestUserService(t *testing.T, repo UserRepository) UserService {
	t.Helper()
	hasher := auth.NewBcryptHasher()
	svc, err := NewUserService(repo, hasher, hasher, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()

	t.Run("hashes the password and assigns the standard role", func(t *testing.T) {
		t.Parallel()
		repo := new(MockUserRepository)
		svc := newTestUserService(t, repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*domain.User)
				assert.Empty(t, user.Password, "plaintext must be cleared before storage")
				assert.NotEmpty(t, user.HashedPassword)
				assert.NotEqual(t, "correct-horse", user.HashedPassword)
				assert.Equal(t, domain.RoleStandard, user.Role)
			}).
			Return(&domain.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: domain.RoleStandard}, nil)

		created, err := svc.Register(context.Background(), RegisterUserInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct-horse",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		t.Parallel()
		repo := new(MockUserRepository)
		svc := newTestUserService(t, repo)

		_, err := svc.Register(context.Background(), RegisterUserInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "short",
		})

		require.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("surfaces duplicate accounts", func(t *testing.T) {
		t.Parallel()
		repo := new(MockUserRepository)
		svc := newTestUserService(t, repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(nil, store.ErrEmailExists)

		_, err := svc.Register(context.Background(), RegisterUserInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct-horse",
		})

		require.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher()
	hashed, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	stored := &domain.User{
		ID:             1,
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: hashed,
		Role:           domain.RoleStandard,
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		repo := new(MockUserRepository)
		svc := newTestUserService(t, repo)
		repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

		user, err := svc.Authenticate(context.Background(), "alice@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		repo := new(MockUserRepository)
		svc := newTestUserService(t, repo)
		repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

		_, err := svc.Authenticate(context.Background(), "alice@example.com", "wrong-horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		t.Parallel()
		repo := new(MockUserRepository)
		svc := newTestUserService(t, repo)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, store.ErrUserNotFound)

		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "correct-horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserServiceGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		repo := new(MockUserRepository)
		svc := newTestUserService(t, repo)
		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Username: "alice", Role: domain.RoleStandard}, nil)

		user, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo := new(MockUserRepository)
		svc := newTestUserService(t, repo)
		repo.On("GetByID", mock.Anything, int64(99)).
			Return(nil, store.ErrUserNotFound)

		_, err := svc.GetByID(context.Background(), 99)
		require.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
