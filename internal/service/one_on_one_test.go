package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/mocks"
	"go.uber.org/mock/gomock"
)

// fakeOneOnOneRepo serves a single stored meeting.
type fakeOneOnOneRepo struct {
	meeting *model.OneOnOne
	deleted bool
}

func (f *fakeOneOnOneRepo) Create(_ context.Context, orgID, managerID string, req *model.CreateOneOnOneRequest) (*model.OneOnOne, error) {
	f.meeting = &model.OneOnOne{
		ID:             "m1",
		OrganizationID: orgID,
		ManagerID:      managerID,
		MemberID:       req.MemberID,
		ScheduledAt:    req.ScheduledAt,
		Notes:          req.Notes,
	}
	return f.meeting, nil
}

func (f *fakeOneOnOneRepo) GetByID(_ context.Context, _, id string) (*model.OneOnOne, error) {
	if f.meeting == nil || f.meeting.ID != id {
		return nil, apperrors.NotFound("one-on-one not found")
	}
	return f.meeting, nil
}

func (f *fakeOneOnOneRepo) ListByParticipant(_ context.Context, _, userID string) ([]*model.OneOnOne, error) {
	if f.meeting != nil && (f.meeting.ManagerID == userID || f.meeting.MemberID == userID) {
		return []*model.OneOnOne{f.meeting}, nil
	}
	return nil, nil
}

func (f *fakeOneOnOneRepo) Update(_ context.Context, _, _ string, req *model.UpdateOneOnOneRequest) (*model.OneOnOne, error) {
	if req.Notes != nil {
		f.meeting.Notes = *req.Notes
	}
	return f.meeting, nil
}

func (f *fakeOneOnOneRepo) Delete(_ context.Context, _, _ string) error {
	f.deleted = true
	return nil
}

func newOneOnOneFixture(t *testing.T) (*OneOnOneService, *fakeOneOnOneRepo, *mocks.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	repo := &fakeOneOnOneRepo{}
	svc := NewOneOnOneService(OneOnOneServiceOptions{OneOnOnes: repo, Users: users})
	return svc, repo, users
}

func scheduleMeeting(t *testing.T, svc *OneOnOneService, users *mocks.MockUserRepository) *model.OneOnOne {
	t.Helper()

	users.EXPECT().GetByID(gomock.Any(), "org1", "member1").Return(&model.User{ID: "member1"}, nil)
	meeting, err := svc.Create(context.Background(), "org1", "mgr1", &model.CreateOneOnOneRequest{
		MemberID:    "member1",
		ScheduledAt: time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return meeting
}

func TestOneOnOneService_Create(t *testing.T) {
	svc, _, users := newOneOnOneFixture(t)

	meeting := scheduleMeeting(t, svc, users)
	assert.Equal(t, "mgr1", meeting.ManagerID)
	assert.Equal(t, "member1", meeting.MemberID)
}

func TestOneOnOneService_Create_UnknownMember(t *testing.T) {
	svc, _, users := newOneOnOneFixture(t)

	users.EXPECT().GetByID(gomock.Any(), "org1", "ghost").Return(nil, apperrors.NotFound("user not found"))

	_, err := svc.Create(context.Background(), "org1", "mgr1", &model.CreateOneOnOneRequest{
		MemberID:    "ghost",
		ScheduledAt: time.Now(),
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestOneOnOneService_GetByID_ParticipantsOnly(t *testing.T) {
	svc, _, users := newOneOnOneFixture(t)
	meeting := scheduleMeeting(t, svc, users)
	ctx := context.Background()

	// Both participants can read it.
	_, err := svc.GetByID(ctx, "org1", meeting.ID, "mgr1", false)
	assert.NoError(t, err)
	_, err = svc.GetByID(ctx, "org1", meeting.ID, "member1", false)
	assert.NoError(t, err)

	// A bystander cannot, unless they are an admin.
	_, err = svc.GetByID(ctx, "org1", meeting.ID, "bystander", false)
	assert.True(t, apperrors.IsForbidden(err))
	_, err = svc.GetByID(ctx, "org1", meeting.ID, "bystander", true)
	assert.NoError(t, err)
}

func TestOneOnOneService_Update_RestrictedToParticipants(t *testing.T) {
	svc, repo, users := newOneOnOneFixture(t)
	meeting := scheduleMeeting(t, svc, users)
	ctx := context.Background()

	notes := "covered growth plan"
	updated, err := svc.Update(ctx, "org1", meeting.ID, "mgr1", false, &model.UpdateOneOnOneRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)

	_, err = svc.Update(ctx, "org1", meeting.ID, "bystander", false, &model.UpdateOneOnOneRequest{Notes: &notes})
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, notes, repo.meeting.Notes)
}

func TestOneOnOneService_Delete_RestrictedToParticipants(t *testing.T) {
	svc, repo, users := newOneOnOneFixture(t)
	meeting := scheduleMeeting(t, svc, users)
	ctx := context.Background()

	err := svc.Delete(ctx, "org1", meeting.ID, "bystander", false)
	assert.True(t, apperrors.IsForbidden(err))
	assert.False(t, repo.deleted)

	require.NoError(t, svc.Delete(ctx, "org1", meeting.ID, "member1", false))
	assert.True(t, repo.deleted)
}
