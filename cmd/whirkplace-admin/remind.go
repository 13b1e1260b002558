package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/whirkplace/whirkplace-api/internal/data"
	"github.com/whirkplace/whirkplace-api/internal/notify/webhook"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

type remindSweepOptions struct {
	Timeout time.Duration
}

// runRemindSweep performs a single reminder pass, useful from cron or
// for debugging reminder delivery without the long-running scheduler.
func runRemindSweep(cmdCtx *commandContext, args []string) error {
	opts, err := parseRemindSweepFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		notifier, notifierErr := buildSweepNotifier(cmdCtx)
		if notifierErr != nil {
			return notifierErr
		}

		reminders := service.NewReminderService(service.ReminderServiceOptions{
			CheckIns: data.NewCheckInRepo(db),
			Notifier: notifier,
			Config: service.ReminderConfig{
				Interval:  cmdCtx.Config.Reminder.Interval,
				BatchSize: cmdCtx.Config.Reminder.BatchSize,
			},
			Logger: cmdCtx.Logger,
		})

		cmdCtx.Logger.Info("running reminder sweep",
			"batch_size", cmdCtx.Config.Reminder.BatchSize)
		if sweepErr := reminders.Sweep(ctx); sweepErr != nil {
			return fmt.Errorf("reminder sweep: %w", sweepErr)
		}
		cmdCtx.Logger.Info("reminder sweep complete")
		return nil
	})
}

func buildSweepNotifier(cmdCtx *commandContext) (service.Notifier, error) {
	if cmdCtx.Config.Webhook.URL == "" {
		return service.NotifierFunc(func(ctx context.Context, n service.Notification) error {
			cmdCtx.Logger.InfoContext(ctx, "notification",
				slog.String("kind", n.Kind),
				slog.String("subject", n.Subject))
			return nil
		}), nil
	}
	client, err := webhook.NewClient(webhook.Config{
		URL:            cmdCtx.Config.Webhook.URL,
		BodyExpression: cmdCtx.Config.Webhook.BodyExpression,
		Timeout:        cmdCtx.Config.Webhook.Timeout,
		RetryLimit:     2,
	})
	if err != nil {
		return nil, fmt.Errorf("build webhook notifier: %w", err)
	}
	return client, nil
}

func parseRemindSweepFlags(args []string) (remindSweepOptions, error) {
	fs := flag.NewFlagSet("remind-sweep", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := remindSweepOptions{}
	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultCommandTimeout,
		"Maximum duration to wait for the sweep to complete",
	)

	if err := fs.Parse(args); err != nil {
		return remindSweepOptions{}, err
	}

	return opts, nil
}
