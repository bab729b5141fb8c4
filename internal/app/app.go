// Package app wires the client components together: config, the local
// store, the session, the HTTP transport and the article state store.
package app

import (
	"context"
	"fmt"

	"inkpress/pkg/config"
	"inkpress/pkg/logger"
	"inkpress/pkg/session"
	"inkpress/pkg/state"
	"inkpress/pkg/store"
	"inkpress/pkg/transport"
)

// App holds the assembled client runtime.
type App struct {
	Config   config.Config
	Session  *session.Manager
	API      *transport.HTTPClient
	Articles *state.Store

	cancelRetention context.CancelFunc
	cancelMetrics   func()
}

// New builds the runtime from config: opens the local store, restores
// any persisted session and constructs the transport and state store.
// Call Close when done so the store is released cleanly.
func New(cfg config.Config) (*App, error) {
	logger.Init(cfg.Logging.Level)

	if err := store.Open(cfg.Storage.DBPath); err != nil {
		return nil, fmt.Errorf("open local store at %s: %w", cfg.Storage.DBPath, err)
	}
	if err := store.SyncSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("sync local store schema: %w", err)
	}

	sess := session.NewManager()
	if err := sess.Restore(); err != nil {
		// a broken session record is not fatal; start logged out
		logger.Warn("session_restore_failed", "error", err)
	}

	api := transport.NewHTTPClient(
		cfg.API.BaseURL,
		sess,
		transport.WithTimeout(cfg.API.TimeoutDuration()),
		transport.WithRateLimit(cfg.API.RateRPS, cfg.API.RateBurst),
	)

	a := &App{
		Config:   cfg,
		Session:  sess,
		API:      api,
		Articles: state.New(api, sess),
	}
	return a, nil
}

// Close tears down background work and the local store.
func (a *App) Close() error {
	if a.cancelRetention != nil {
		a.cancelRetention()
		a.cancelRetention = nil
	}
	if a.cancelMetrics != nil {
		a.cancelMetrics()
		a.cancelMetrics = nil
	}
	return store.Close()
}
