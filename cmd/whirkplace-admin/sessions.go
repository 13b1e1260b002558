package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/whirkplace/whirkplace-api/internal/bootstrap"
)

const (
	sessionKeyPattern    = "session:*"
	sessionScanBatchSize = 200
)

type clearSessionsOptions struct {
	DryRun  bool
	Yes     bool
	Timeout time.Duration
}

// runClearSessions removes server-side sessions from Redis. Every
// logged-in user is forced to re-authenticate, so the command confirms
// before deleting anything.
func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearSessionsFlags(args)
	if err != nil {
		return err
	}

	if confirmErr := confirmAction(clearSessionsConfirmOptions{opts: opts}, "clear all sessions"); confirmErr != nil {
		return confirmErr
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(ctx, cmdCtx.Config.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	deleted, scanned, err := clearSessionKeys(ctx, client, opts.DryRun)
	if err != nil {
		return err
	}

	if opts.DryRun {
		return writef(os.Stdout, "Dry run: would delete %d of %d scanned session keys.\n", deleted, scanned)
	}
	return writef(os.Stdout, "Deleted %d session keys (%d scanned).\n", deleted, scanned)
}

func clearSessionKeys(ctx context.Context, client redis.UniversalClient, dryRun bool) (deleted, scanned int, err error) {
	var cursor uint64
	for {
		keys, next, scanErr := client.Scan(ctx, cursor, sessionKeyPattern, sessionScanBatchSize).Result()
		if scanErr != nil {
			return deleted, scanned, fmt.Errorf("scan session keys: %w", scanErr)
		}
		scanned += len(keys)

		if len(keys) > 0 {
			if dryRun {
				deleted += len(keys)
			} else {
				removed, delErr := client.Del(ctx, keys...).Result()
				if delErr != nil {
					return deleted, scanned, fmt.Errorf("delete session keys: %w", delErr)
				}
				deleted += int(removed)
			}
		}

		cursor = next
		if cursor == 0 {
			return deleted, scanned, nil
		}
	}
}

func parseClearSessionsFlags(args []string) (clearSessionsOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := clearSessionsOptions{}
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Count matching keys without deleting them")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultCommandTimeout,
		"Maximum duration to wait for the clear to complete",
	)

	if err := fs.Parse(args); err != nil {
		return clearSessionsOptions{}, err
	}

	if opts.Timeout <= 0 {
		return clearSessionsOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

type clearSessionsConfirmOptions struct {
	opts clearSessionsOptions
}

func (c clearSessionsConfirmOptions) IsDryRun() bool { return c.opts.DryRun }
func (c clearSessionsConfirmOptions) IsYes() bool    { return c.opts.Yes }
func (c clearSessionsConfirmOptions) GetWarning() string {
	return "WARNING: this will delete every server-side session and log all users out."
}
func (c clearSessionsConfirmOptions) GetTarget() string { return "" }
