package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/data"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
)

// ReminderConfig tunes the reminder sweep.
type ReminderConfig struct {
	Interval  time.Duration
	BatchSize int
}

// ReminderServiceOptions groups dependencies for ReminderService.
type ReminderServiceOptions struct {
	CheckIns core.CheckInRepository
	Notifier Notifier
	Config   ReminderConfig
	Logger   *slog.Logger
	Time     data.TimeProvider
}

// ReminderService periodically nudges users who have not submitted
// this week's check-in. Each sweep is best-effort: a failed
// notification is logged and skipped, never retried within the sweep,
// and the user simply gets picked up by the next one.
type ReminderService struct {
	checkIns core.CheckInRepository
	notifier Notifier
	cfg      ReminderConfig
	logger   *slog.Logger
	time     data.TimeProvider
}

// NewReminderService constructs a new ReminderService.
func NewReminderService(opts ReminderServiceOptions) *ReminderService {
	if opts.CheckIns == nil {
		panic("CheckInRepository is required")
	}
	if opts.Config.Interval <= 0 {
		opts.Config.Interval = time.Hour
	}
	if opts.Config.BatchSize <= 0 {
		opts.Config.BatchSize = 100
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Time == nil {
		opts.Time = &data.RealTimeProvider{}
	}
	return &ReminderService{
		checkIns: opts.CheckIns,
		notifier: opts.Notifier,
		cfg:      opts.Config,
		logger:   opts.Logger,
		time:     opts.Time,
	}
}

// Run sweeps on the configured interval until the context is
// cancelled. Returns nil on cancellation; the loop owns no resources
// beyond the ticker.
func (s *ReminderService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting reminder loop",
		slog.Duration("interval", s.cfg.Interval),
		slog.Int("batch_size", s.cfg.BatchSize))

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "reminder loop stopped")
			return nil
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.ErrorContext(ctx, "reminder sweep failed", slog.Any("error", err))
			}
		}
	}
}

// Sweep notifies one batch of users missing the current week's
// check-in. Exported so tests and the admin CLI can trigger a single
// pass.
func (s *ReminderService) Sweep(ctx context.Context) error {
	now := s.time.Now().UTC()
	weekStart := model.WeekStartOf(now)

	users, err := s.checkIns.ListMissingForWeek(ctx, weekStart, now, s.cfg.BatchSize)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}

	notified := 0
	for _, user := range users {
		if s.notifier == nil {
			break
		}
		err := s.notifier.Notify(ctx, Notification{
			Kind:    "check_in_reminder",
			Subject: user.Email,
			Body: map[string]any{
				"user_id":         user.ID,
				"organization_id": user.OrganizationID,
				"week_start":      weekStart.Format(time.RFC3339),
			},
			OccurredAt: now,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "reminder notification failed",
				slog.String("user_id", user.ID),
				slog.Any("error", err))
			continue
		}
		notified++
	}

	s.logger.InfoContext(ctx, "reminder sweep complete",
		slog.Int("missing", len(users)),
		slog.Int("notified", notified))
	return nil
}
