package service

import (
	"context"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

// OneOnOneServiceOptions groups dependencies for OneOnOneService.
type OneOnOneServiceOptions struct {
	OneOnOnes core.OneOnOneRepository
	Users     core.UserRepository
}

// OneOnOneService schedules and tracks manager/member meetings.
type OneOnOneService struct {
	oneOnOnes core.OneOnOneRepository
	users     core.UserRepository
}

// NewOneOnOneService constructs a new OneOnOneService.
func NewOneOnOneService(opts OneOnOneServiceOptions) *OneOnOneService {
	if opts.OneOnOnes == nil {
		panic("OneOnOneRepository is required")
	}
	return &OneOnOneService{oneOnOnes: opts.OneOnOnes, users: opts.Users}
}

// Create schedules a one-on-one between managerID and the member.
func (s *OneOnOneService) Create(ctx context.Context, orgID, managerID string, req *model.CreateOneOnOneRequest) (*model.OneOnOne, error) {
	if req != nil && s.users != nil {
		if _, err := s.users.GetByID(ctx, orgID, req.MemberID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("member does not exist in this organization")
			}
			return nil, err
		}
	}
	return s.oneOnOnes.Create(ctx, orgID, managerID, req)
}

// GetByID retrieves a one-on-one within orgID, visible only to its
// participants and admins.
func (s *OneOnOneService) GetByID(ctx context.Context, orgID, id, callerID string, callerIsAdmin bool) (*model.OneOnOne, error) {
	meeting, err := s.oneOnOnes.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !callerIsAdmin && meeting.ManagerID != callerID && meeting.MemberID != callerID {
		return nil, apperrors.Forbidden("not a participant of this one-on-one")
	}
	return meeting, nil
}

// ListForUser returns the one-on-ones userID participates in.
func (s *OneOnOneService) ListForUser(ctx context.Context, orgID, userID string) ([]*model.OneOnOne, error) {
	return s.oneOnOnes.ListByParticipant(ctx, orgID, userID)
}

// Update applies a partial update, restricted to participants and admins.
func (s *OneOnOneService) Update(ctx context.Context, orgID, id, callerID string, callerIsAdmin bool, req *model.UpdateOneOnOneRequest) (*model.OneOnOne, error) {
	if _, err := s.GetByID(ctx, orgID, id, callerID, callerIsAdmin); err != nil {
		return nil, err
	}
	return s.oneOnOnes.Update(ctx, orgID, id, req)
}

// Delete removes a one-on-one, restricted to participants and admins.
func (s *OneOnOneService) Delete(ctx context.Context, orgID, id, callerID string, callerIsAdmin bool) error {
	if _, err := s.GetByID(ctx, orgID, id, callerID, callerIsAdmin); err != nil {
		return err
	}
	return s.oneOnOnes.Delete(ctx, orgID, id)
}
