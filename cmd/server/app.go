package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard-api/internal/cache"
	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/platform/postgres"
	"github.com/taskboard/taskboard-api/internal/platform/rediscache"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/service/auth"
	"github.com/taskboard/taskboard-api/internal/store"
	"github.com/taskboard/taskboard-api/internal/ws"
)

// eventQueueSize bounds the notification dispatch queue. Lifecycle
// operations never block on slow subscribers; overflow events are
// dropped and logged instead.
const eventQueueSize = 256

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	redisClient *redis.Client

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService
	taskCache   cache.TaskCache

	// Notification fan-out
	registry   *ws.Registry
	dispatcher *ws.Dispatcher
}

// newApplication creates a new application instance with all
// dependencies initialized. It accepts core dependencies like
// configuration, logger, and database connection that must be
// established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	// Projection cache. A failed ping is logged, not fatal: the cache
	// degrades to store reads.
	app.redisClient = redis.NewClient(&redis.Options{
		Addr: cfg.Cache.Addr,
		DB:   cfg.Cache.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := app.redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Cache backend unreachable at startup, continuing without it",
			"error", err.Error())
	} else {
		logger.Info("Cache connection established", "addr", cfg.Cache.Addr)
	}
	app.taskCache = rediscache.New(
		app.redisClient,
		time.Duration(cfg.Cache.TaskTTLSeconds)*time.Second,
		logger,
	)

	// Notification fan-out: registry of live connections fed by a
	// bounded dispatch queue.
	app.registry = ws.NewRegistry(logger)
	app.dispatcher = ws.NewDispatcher(app.registry, eventQueueSize, logger)
	app.dispatcher.Start()

	// Services
	hasher := auth.NewBcryptHasher()
	app.userService, err = service.NewUserService(
		service.NewUserRepositoryAdapter(app.userStore, db),
		hasher,
		hasher,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		service.NewTaskRepositoryAdapter(app.taskStore, db),
		app.taskCache,
		app.dispatcher,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters
// problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop accepting events and drain the queue before closing anything
	// the delivery path still needs.
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing cache connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
