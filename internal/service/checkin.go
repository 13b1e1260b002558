package service

import (
	"context"
	"time"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/data"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

// CheckInServiceOptions groups dependencies for CheckInService.
type CheckInServiceOptions struct {
	CheckIns core.CheckInRepository
	Users    core.UserRepository
	Time     data.TimeProvider
}

// CheckInService owns the weekly check-in cycle: submissions for the
// current week, history, and exemptions.
type CheckInService struct {
	checkIns core.CheckInRepository
	users    core.UserRepository
	time     data.TimeProvider
}

// NewCheckInService constructs a new CheckInService.
func NewCheckInService(opts CheckInServiceOptions) *CheckInService {
	if opts.CheckIns == nil {
		panic("CheckInRepository is required")
	}
	if opts.Time == nil {
		opts.Time = &data.RealTimeProvider{}
	}
	return &CheckInService{checkIns: opts.CheckIns, users: opts.Users, time: opts.Time}
}

// Submit records userID's check-in for the current week. Resubmitting
// replaces the earlier answers for the same week.
func (s *CheckInService) Submit(ctx context.Context, orgID, userID string, req *model.CreateCheckInRequest) (*model.CheckIn, error) {
	return s.checkIns.Upsert(ctx, orgID, userID, req)
}

// Current returns userID's check-in for the current week, or nil with
// no error when none was submitted yet.
func (s *CheckInService) Current(ctx context.Context, orgID, userID string) (*model.CheckIn, error) {
	checkIn, err := s.checkIns.GetCurrent(ctx, orgID, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return checkIn, nil
}

// WeekSummary is the manager view of one week.
type WeekSummary struct {
	WeekStart time.Time        `json:"week_start"`
	CheckIns  []*model.CheckIn `json:"check_ins"`
	Submitted int              `json:"submitted"`
	Expected  int              `json:"expected"`
}

// Week returns all check-ins for the week containing at, along with
// the submitted-vs-expected counts.
func (s *CheckInService) Week(ctx context.Context, orgID string, at time.Time) (*WeekSummary, error) {
	weekStart := model.WeekStartOf(at)

	checkIns, err := s.checkIns.ListByWeek(ctx, orgID, weekStart)
	if err != nil {
		return nil, err
	}

	expected := 0
	if s.users != nil {
		expected, err = s.users.CountActiveByOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
	}

	return &WeekSummary{
		WeekStart: weekStart,
		CheckIns:  checkIns,
		Submitted: len(checkIns),
		Expected:  expected,
	}, nil
}

// History returns userID's check-in history, newest week first.
func (s *CheckInService) History(ctx context.Context, orgID, userID string, limit int) ([]*model.CheckIn, error) {
	return s.checkIns.ListByUser(ctx, orgID, userID, limit)
}

// CreateExemption excuses a user from check-in reminders.
func (s *CheckInService) CreateExemption(ctx context.Context, orgID string, req *model.CreateExemptionRequest) (*model.CheckInExemption, error) {
	if req != nil && s.users != nil {
		if _, err := s.users.GetByID(ctx, orgID, req.UserID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("user does not exist in this organization")
			}
			return nil, err
		}
	}
	return s.checkIns.CreateExemption(ctx, orgID, req)
}

// ListExemptions returns orgID's exemptions.
func (s *CheckInService) ListExemptions(ctx context.Context, orgID string) ([]*model.CheckInExemption, error) {
	return s.checkIns.ListExemptions(ctx, orgID)
}

// DeleteExemption removes an exemption within orgID.
func (s *CheckInService) DeleteExemption(ctx context.Context, orgID, id string) error {
	return s.checkIns.DeleteExemption(ctx, orgID, id)
}
