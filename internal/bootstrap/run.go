package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/whirkplace/whirkplace-api/config"
	"golang.org/x/sync/errgroup"
)

// RunDeps groups everything Run needs.
type RunDeps struct {
	Config   *config.AppConfig
	Services ServiceContainer
	DB       *sql.DB
	Logger   *slog.Logger
}

// Run starts the enabled services and blocks until a termination
// signal arrives or one of them fails. On signal the HTTP server
// drains and background loops stop via context cancellation.
func Run(ctx context.Context, deps RunDeps) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := deps.Config.GetEnabledServices()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	if enabled[config.ServiceModeHTTP] {
		server, limiter := BuildHTTPServer(HTTPDeps{
			Config:   deps.Config,
			Services: deps.Services,
			DB:       deps.DB,
			Logger:   logger,
		})
		limiter.StartCleanup(groupCtx)

		group.Go(func() error {
			logger.InfoContext(groupCtx, "starting HTTP server", slog.String("addr", server.Addr))
			if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				return serveErr
			}
			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			ShutdownHTTPServer(server, logger)
			return nil
		})
	}

	if enabled[config.ServiceModeReminder] {
		group.Go(func() error {
			return deps.Services.Reminders.Run(groupCtx)
		})
	}

	return group.Wait()
}
