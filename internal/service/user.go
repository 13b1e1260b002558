package service

import (
	"context"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users core.UserRepository
	Teams core.TeamRepository
}

// UserService provides user management within a tenant.
type UserService struct {
	users core.UserRepository
	teams core.TeamRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	return &UserService{users: opts.Users, teams: opts.Teams}
}

// Create adds a user to orgID, verifying any referenced team belongs
// to the same organization.
func (s *UserService) Create(ctx context.Context, orgID string, req *model.CreateUserRequest) (*model.User, error) {
	if req != nil && req.TeamID != nil && s.teams != nil {
		if _, err := s.teams.GetByID(ctx, orgID, *req.TeamID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("team does not exist in this organization")
			}
			return nil, err
		}
	}
	return s.users.Create(ctx, orgID, req)
}

// GetByID retrieves a user within orgID.
func (s *UserService) GetByID(ctx context.Context, orgID, id string) (*model.User, error) {
	return s.users.GetByID(ctx, orgID, id)
}

// List returns users in orgID, optionally filtered to a team.
func (s *UserService) List(ctx context.Context, orgID string, teamID *string, limit, offset int) ([]*model.User, error) {
	return s.users.ListByOrg(ctx, orgID, teamID, limit, offset)
}

// Update applies a partial update within orgID.
func (s *UserService) Update(ctx context.Context, orgID, id string, req *model.UpdateUserRequest) (*model.User, error) {
	if req != nil && req.TeamID != nil && *req.TeamID != "" && s.teams != nil {
		if _, err := s.teams.GetByID(ctx, orgID, *req.TeamID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Validation("team does not exist in this organization")
			}
			return nil, err
		}
	}
	return s.users.Update(ctx, orgID, id, req)
}

// Deactivate marks a user inactive within orgID.
func (s *UserService) Deactivate(ctx context.Context, orgID, id string) error {
	return s.users.Deactivate(ctx, orgID, id)
}
