package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/pikacalc/internal/domain/calculator"
	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/infra/config"
)

// App bundles the wired services with the HTTP server lifecycle.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	server     *http.Server
	roster     roster.Service
	calculator calculator.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, rosterSvc roster.Service, calcSvc calculator.Service) *App {
	return &App{
		cfg:        cfg,
		logger:     logger.With("component", "bootstrap"),
		server:     server,
		roster:     rosterSvc,
		calculator: calcSvc,
	}
}

// Roster exposes the roster loader to non-HTTP adapters.
func (a *App) Roster() roster.Service { return a.roster }

// Calculator exposes the calculator façade to non-HTTP adapters.
func (a *App) Calculator() calculator.Service { return a.calculator }

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.server.Addr, "cache_backend", a.cfg.Cache.Backend)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
