package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/npetrov/roomchat-server/internal/config"
	"github.com/npetrov/roomchat-server/internal/core"
	"github.com/npetrov/roomchat-server/internal/store"
	"github.com/npetrov/roomchat-server/internal/store/sqlite"
	transporthttp "github.com/npetrov/roomchat-server/internal/transport/http"
)

// App wires together core, store and transport layers. All service
// handles are constructed once here and passed by reference.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application: opens the store and bootstraps the
// room directory before the transport accepts any connection.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")

	directory := core.NewDirectory(st, logger, cfg.DefaultRoom)
	if err := directory.Bootstrap(context.Background()); err != nil {
		st.Close()
		return nil, fmt.Errorf("bootstrap directory: %w", err)
	}

	hub := core.NewHub(st, directory, cfg.HistoryLimit, logger)
	server := transporthttp.NewServer(hub, st, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the hub and the HTTP server and blocks until context
// cancellation or a fatal server error. On the way out it flushes
// pending persistence before closing the store.
func (a *App) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		a.hub.Run(hubCtx)
		close(hubDone)
	}()

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.teardown(stopHub, hubDone)
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		err := a.server.Shutdown(shutdownCtx)
		a.teardown(stopHub, hubDone)
		if err != nil {
			return err
		}
		return <-serverErr
	}
}

// teardown stops the hub, waits for its pending persistence dispatches
// to drain, and closes the store.
func (a *App) teardown(stopHub context.CancelFunc, hubDone <-chan struct{}) {
	stopHub()

	select {
	case <-hubDone:
	case <-time.After(a.shutdownTimeout):
		a.log.Warn().Msg("hub did not drain in time")
	}

	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close store")
	} else {
		a.log.Info().Msg("store closed")
	}
}
