package service

import (
	"context"

	"github.com/whirkplace/whirkplace-api/internal/core"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
)

// TeamServiceOptions groups dependencies for TeamService.
type TeamServiceOptions struct {
	Teams core.TeamRepository
}

// TeamService provides team management within a tenant.
type TeamService struct {
	teams core.TeamRepository
}

// NewTeamService constructs a new TeamService.
func NewTeamService(opts TeamServiceOptions) *TeamService {
	if opts.Teams == nil {
		panic("TeamRepository is required")
	}
	return &TeamService{teams: opts.Teams}
}

// Create adds a team to orgID.
func (s *TeamService) Create(ctx context.Context, orgID string, req *model.CreateTeamRequest) (*model.Team, error) {
	return s.teams.Create(ctx, orgID, req)
}

// GetByID retrieves a team within orgID.
func (s *TeamService) GetByID(ctx context.Context, orgID, id string) (*model.Team, error) {
	return s.teams.GetByID(ctx, orgID, id)
}

// List returns all teams in orgID.
func (s *TeamService) List(ctx context.Context, orgID string) ([]*model.Team, error) {
	return s.teams.ListByOrg(ctx, orgID)
}

// Update applies a partial update within orgID.
func (s *TeamService) Update(ctx context.Context, orgID, id string, req *model.UpdateTeamRequest) (*model.Team, error) {
	return s.teams.Update(ctx, orgID, id, req)
}

// Delete removes a team within orgID.
func (s *TeamService) Delete(ctx context.Context, orgID, id string) error {
	return s.teams.Delete(ctx, orgID, id)
}
