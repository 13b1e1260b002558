package service

import (
	"context"
	"time"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/data"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
)

// AnalyticsServiceOptions groups dependencies for AnalyticsService.
type AnalyticsServiceOptions struct {
	CheckIns  core.CheckInRepository
	Shoutouts core.ShoutoutRepository
	Users     core.UserRepository
	Time      data.TimeProvider
}

// AnalyticsService computes engagement summaries for a tenant.
type AnalyticsService struct {
	checkIns  core.CheckInRepository
	shoutouts core.ShoutoutRepository
	users     core.UserRepository
	time      data.TimeProvider
}

// NewAnalyticsService constructs a new AnalyticsService.
func NewAnalyticsService(opts AnalyticsServiceOptions) *AnalyticsService {
	if opts.CheckIns == nil {
		panic("CheckInRepository is required")
	}
	if opts.Shoutouts == nil {
		panic("ShoutoutRepository is required")
	}
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Time == nil {
		opts.Time = &data.RealTimeProvider{}
	}
	return &AnalyticsService{
		checkIns:  opts.CheckIns,
		shoutouts: opts.Shoutouts,
		users:     opts.Users,
		time:      opts.Time,
	}
}

// Summary is the org-wide engagement snapshot.
type Summary struct {
	WeekStart         time.Time `json:"week_start"`
	ActiveUsers       int       `json:"active_users"`
	CheckInsThisWeek  int       `json:"check_ins_this_week"`
	ParticipationRate float64   `json:"participation_rate"`
	ShoutoutsThisWeek int       `json:"shoutouts_this_week"`
}

// Summarize computes the current week's engagement for orgID.
func (s *AnalyticsService) Summarize(ctx context.Context, orgID string) (*Summary, error) {
	now := s.time.Now().UTC()
	weekStart := model.WeekStartOf(now)

	activeUsers, err := s.users.CountActiveByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	checkIns, err := s.checkIns.CountByWeek(ctx, orgID, weekStart)
	if err != nil {
		return nil, err
	}
	shoutouts, err := s.shoutouts.CountSince(ctx, orgID, weekStart)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if activeUsers > 0 {
		rate = float64(checkIns) / float64(activeUsers)
	}

	return &Summary{
		WeekStart:         weekStart,
		ActiveUsers:       activeUsers,
		CheckInsThisWeek:  checkIns,
		ParticipationRate: rate,
		ShoutoutsThisWeek: shoutouts,
	}, nil
}

// WeeklyTrend is one week's participation in the trend series.
type WeeklyTrend struct {
	WeekStart         time.Time `json:"week_start"`
	CheckIns          int       `json:"check_ins"`
	ParticipationRate float64   `json:"participation_rate"`
}

// Trend returns per-week participation for the trailing weeks. This
// powers the advanced analytics view on enterprise plans; the
// feature gate for plan.FeatureAdvancedAnalytics sits at the route
// level.
func (s *AnalyticsService) Trend(ctx context.Context, orgID string, weeks int) ([]WeeklyTrend, error) {
	if weeks <= 0 || weeks > 52 {
		weeks = 12
	}

	activeUsers, err := s.users.CountActiveByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	now := s.time.Now().UTC()
	out := make([]WeeklyTrend, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		weekStart := model.WeekStartOf(now.AddDate(0, 0, -7*i))
		count, countErr := s.checkIns.CountByWeek(ctx, orgID, weekStart)
		if countErr != nil {
			return nil, countErr
		}
		rate := 0.0
		if activeUsers > 0 {
			rate = float64(count) / float64(activeUsers)
		}
		out = append(out, WeeklyTrend{WeekStart: weekStart, CheckIns: count, ParticipationRate: rate})
	}
	return out, nil
}
