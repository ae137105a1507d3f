package service

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// NewUserRepositoryAdapter creates a new adapter that allows a
// store.UserStore to be used where a UserRepository is expected.
func NewUserRepositoryAdapter(userStore store.UserStore, db *sql.DB) UserRepository {
	return &userRepositoryAdapter{
		userStore: userStore,
		db:        db,
	}
}

// userRepositoryAdapter adapts a store.UserStore to the UserRepository interface.
type userRepositoryAdapter struct {
	userStore store.UserStore
	db        *sql.DB
}

// Create implements UserRepository.Create.
func (a *userRepositoryAdapter) Create(
	ctx context.Context,
	user *domain.User,
) (*domain.User, error) {
	var created *domain.User
	err := store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		created, err = a.userStore.WithTx(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID implements UserRepository.GetByID.
func (a *userRepositoryAdapter) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return a.userStore.GetByID(ctx, id)
}

// GetByEmail implements UserRepository.GetByEmail.
func (a *userRepositoryAdapter) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.User, error) {
	return a.userStore.GetByEmail(ctx, email)
}
