// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, metrics, database, storage) that domain systems require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/unifix/internal/config"
	"github.com/JaimeStill/unifix/internal/metrics"
	"github.com/JaimeStill/unifix/pkg/database"
	"github.com/JaimeStill/unifix/pkg/lifecycle"
	"github.com/JaimeStill/unifix/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, metrics, database access, and blob storage.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration, logging
// to stderr. It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput behaves like New with log output written to w.
func NewWithOutput(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Metrics:   metrics.New(),
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and storage hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
