package service

import (
	"context"
	"log/slog"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/platform/logger"
	"github.com/taskboard/taskboard-api/internal/service/auth"
	"github.com/taskboard/taskboard-api/internal/store"
)

// RegisterUserInput carries the caller-supplied fields for a new account.
// Every registration produces a standard-role user; roles are never
// caller-selectable.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// UserRepository defines the repository interface for the user service.
type UserRepository interface {
	// Create saves a new user and returns it with the store-assigned ID.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserService provides account registration and credential verification.
type UserService interface {
	// Register creates a new standard-role user with a hashed password.
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// Authenticate verifies an email/password pair and returns the user.
	// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	repo     UserRepository
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	repo UserRepository,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	log *slog.Logger,
) (UserService, error) {
	if repo == nil {
		return nil, NewUserServiceError("new", "repository cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, NewUserServiceError("new", "hasher cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, NewUserServiceError("new", "verifier cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &userServiceImpl{
		repo:     repo,
		hasher:   hasher,
		verifier: verifier,
		logger:   log.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(
	ctx context.Context,
	input RegisterUserInput,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, NewUserServiceError("register", "invalid user", err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, NewUserServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if store.IsDuplicateError(err) {
			return nil, NewUserServiceError("register", "account already exists", err)
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return nil, NewUserServiceError("register", "failed to save user", err)
	}

	log.Info("user registered", slog.Int64("user_id", created.ID))
	return created, nil
}

// Authenticate implements UserService.Authenticate.
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user", slog.String("error", err.Error()))
		return nil, NewUserServiceError("authenticate", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID implements UserService.GetByID.
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewUserServiceError("get_user", "user not found", store.ErrUserNotFound)
		}
		return nil, NewUserServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}
