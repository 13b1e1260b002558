package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whirkplace/whirkplace-api/internal/data"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/mocks"
	"go.uber.org/mock/gomock"
)

// fakeCheckInRepo is an in-memory stand-in for core.CheckInRepository.
type fakeCheckInRepo struct {
	current    map[string]*model.CheckIn // keyed by org/user
	byWeek     []*model.CheckIn
	exemptions []*model.CheckInExemption
}

func (f *fakeCheckInRepo) Upsert(_ context.Context, orgID, userID string, req *model.CreateCheckInRequest) (*model.CheckIn, error) {
	checkIn := &model.CheckIn{
		ID:             "ci1",
		OrganizationID: orgID,
		UserID:         userID,
		Mood:           req.Mood,
		Highlights:     req.Highlights,
		Blockers:       req.Blockers,
	}
	if f.current == nil {
		f.current = map[string]*model.CheckIn{}
	}
	f.current[orgID+"/"+userID] = checkIn
	return checkIn, nil
}

func (f *fakeCheckInRepo) GetCurrent(_ context.Context, orgID, userID string) (*model.CheckIn, error) {
	if checkIn, ok := f.current[orgID+"/"+userID]; ok {
		return checkIn, nil
	}
	return nil, apperrors.NotFound("check-in not found")
}

func (f *fakeCheckInRepo) ListByWeek(_ context.Context, _ string, _ time.Time) ([]*model.CheckIn, error) {
	return f.byWeek, nil
}

func (f *fakeCheckInRepo) ListByUser(_ context.Context, orgID, userID string, limit int) ([]*model.CheckIn, error) {
	out := []*model.CheckIn{}
	if checkIn, ok := f.current[orgID+"/"+userID]; ok {
		out = append(out, checkIn)
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCheckInRepo) CountByWeek(_ context.Context, _ string, _ time.Time) (int, error) {
	return len(f.byWeek), nil
}

func (f *fakeCheckInRepo) ListMissingForWeek(_ context.Context, _, _ time.Time, _ int) ([]*model.User, error) {
	return nil, nil
}

func (f *fakeCheckInRepo) CreateExemption(_ context.Context, orgID string, req *model.CreateExemptionRequest) (*model.CheckInExemption, error) {
	exemption := &model.CheckInExemption{
		ID:             "ex1",
		OrganizationID: orgID,
		UserID:         req.UserID,
		Reason:         req.Reason,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
	}
	f.exemptions = append(f.exemptions, exemption)
	return exemption, nil
}

func (f *fakeCheckInRepo) ListExemptions(_ context.Context, _ string) ([]*model.CheckInExemption, error) {
	return f.exemptions, nil
}

func (f *fakeCheckInRepo) DeleteExemption(_ context.Context, _, _ string) error {
	return nil
}

func TestCheckInService_SubmitAndCurrent(t *testing.T) {
	repo := &fakeCheckInRepo{}
	svc := NewCheckInService(CheckInServiceOptions{CheckIns: repo})
	ctx := context.Background()

	// Nothing submitted yet: nil, no error.
	current, err := svc.Current(ctx, "org1", "u1")
	require.NoError(t, err)
	assert.Nil(t, current)

	submitted, err := svc.Submit(ctx, "org1", "u1", &model.CreateCheckInRequest{Mood: 4, Highlights: "good week"})
	require.NoError(t, err)
	assert.Equal(t, "org1", submitted.OrganizationID)
	assert.Equal(t, "u1", submitted.UserID)

	current, err = svc.Current(ctx, "org1", "u1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, 4, current.Mood)
}

func TestCheckInService_Week(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)

	repo := &fakeCheckInRepo{byWeek: []*model.CheckIn{
		{ID: "ci1", UserID: "u1"},
		{ID: "ci2", UserID: "u2"},
	}}
	tp := data.NewFixedTimeProvider(time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC))
	svc := NewCheckInService(CheckInServiceOptions{CheckIns: repo, Users: users, Time: tp})

	users.EXPECT().CountActiveByOrg(gomock.Any(), "org1").Return(5, nil)

	summary, err := svc.Week(context.Background(), "org1", tp.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), summary.WeekStart)
	assert.Equal(t, 2, summary.Submitted)
	assert.Equal(t, 5, summary.Expected)
	assert.Len(t, summary.CheckIns, 2)
}

func TestCheckInService_CreateExemption_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)

	svc := NewCheckInService(CheckInServiceOptions{CheckIns: &fakeCheckInRepo{}, Users: users})

	users.EXPECT().GetByID(gomock.Any(), "org1", "ghost").Return(nil, apperrors.NotFound("user not found"))

	_, err := svc.CreateExemption(context.Background(), "org1", &model.CreateExemptionRequest{
		UserID:   "ghost",
		Reason:   "leave",
		StartsAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCheckInService_CreateExemption(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)

	repo := &fakeCheckInRepo{}
	svc := NewCheckInService(CheckInServiceOptions{CheckIns: repo, Users: users})

	users.EXPECT().GetByID(gomock.Any(), "org1", "u1").Return(&model.User{ID: "u1"}, nil)

	exemption, err := svc.CreateExemption(context.Background(), "org1", &model.CreateExemptionRequest{
		UserID:   "u1",
		Reason:   "sabbatical",
		StartsAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", exemption.UserID)

	exemptions, err := svc.ListExemptions(context.Background(), "org1")
	require.NoError(t, err)
	assert.Len(t, exemptions, 1)
}
