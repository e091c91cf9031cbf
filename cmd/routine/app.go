package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/amonks/routine/internal/config"
	"github.com/amonks/routine/internal/paths"
	"github.com/amonks/routine/preset"
	"github.com/amonks/routine/storage"
	"github.com/amonks/routine/task"
)

// tasksKey is the storage key that holds the task collection.
const tasksKey = "tasks"

// envNow pins the CLI clock to an RFC 3339 timestamp.
const envNow = "ROUTINE_NOW"

// app bundles everything a command needs.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	now      func() time.Time
	provider storage.Provider
	stateDir string
	store    *task.Store
}

func newLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "routine: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

func clock() (func() time.Time, error) {
	value := os.Getenv(envNow)
	if value == "" {
		return time.Now, nil
	}
	fixed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", envNow, err)
	}
	return func() time.Time { return fixed }, nil
}

// openProvider opens the configured storage backend without loading tasks.
func openProvider() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	now, err := clock()
	if err != nil {
		return nil, err
	}
	stateDir, err := cfg.StateDir()
	if err != nil {
		return nil, err
	}
	provider, err := storage.Open(cfg.Storage.Backend, stateDir)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		logger:   newLogger(),
		now:      now,
		provider: provider,
		stateDir: stateDir,
	}, nil
}

// openApp opens the task store and runs the resume pass.
func openApp() (*app, error) {
	a, err := openProvider()
	if err != nil {
		return nil, err
	}
	store, err := task.Open(context.Background(), task.Options{
		Persistence: storage.Bind(a.provider, tasksKey),
		Logger:      a.logger,
		Now:         a.now,
	})
	if err != nil {
		a.provider.Close()
		return nil, err
	}
	a.store = store

	policy := task.PolicyKeep
	if a.cfg.Tasks.ExpireOverdueOnResume {
		policy = task.PolicyExpireOverdue
	}
	if expired := store.Reconcile(a.now(), policy); len(expired) > 0 {
		a.logger.Printf("expired %d overdue tasks", len(expired))
	}
	return a, nil
}

// Close flushes pending saves and releases storage.
func (a *app) Close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
	}
	if closeErr := a.provider.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (a *app) catalog() (*preset.Catalog, error) {
	dir, err := a.cfg.PresetsDir()
	if err != nil {
		return nil, err
	}
	return preset.NewCatalog(dir, preset.CatalogOptions{Logger: a.logger}), nil
}

// withApp opens the app, runs fn, and reports save failures as errors.
func withApp(fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	runErr := fn(a)
	closeErr := a.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("save tasks: %w", closeErr)
	}
	return nil
}
