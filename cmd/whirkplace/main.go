// Command whirkplace runs the Whirkplace API server and, depending on
// the SERVICES setting, the check-in reminder scheduler.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/whirkplace/whirkplace-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", slog.Any("error", err))
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err = bootstrap.ValidateServiceConfig(&cfg); err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting whirkplace",
		slog.Bool("dev", cfg.IsDev),
		slog.String("services", cfg.Services),
		slog.Int("port", cfg.HTTP.Port))

	db, err := bootstrap.ConnectDB(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", slog.Any("error", cerr))
		}
	}()

	redisClient, err := bootstrap.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", slog.Any("error", cerr))
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", slog.String("reason", "disabled via config"))
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.Run(ctx, bootstrap.RunDeps{
		Config:   &cfg,
		Services: services,
		DB:       db,
		Logger:   logger,
	})
}
