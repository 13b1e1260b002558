// Package core defines repository interfaces (ports in hexagonal
// architecture). Services depend on these contracts, never on the
// concrete pgx implementations in internal/data.
package core

import (
	"context"
	"time"

	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
)

// OrganizationRepository defines the interface for organization data operations.
type OrganizationRepository interface {
	Create(ctx context.Context, req *model.CreateOrganizationRequest) (*model.Organization, error)
	GetByID(ctx context.Context, id string) (*model.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)
	List(ctx context.Context, limit, offset int) ([]*model.Organization, error)
	UpdatePlan(ctx context.Context, id string, tier plan.Tier) (*model.Organization, error)
	UpdateStatus(ctx context.Context, id string, status model.OrgStatus) (*model.Organization, error)
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, orgID string, req *model.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, orgID, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListByOrg(ctx context.Context, orgID string, teamID *string, limit, offset int) ([]*model.User, error)
	CountActiveByOrg(ctx context.Context, orgID string) (int, error)
	Update(ctx context.Context, orgID, id string, req *model.UpdateUserRequest) (*model.User, error)
	Deactivate(ctx context.Context, orgID, id string) error
}

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	Create(ctx context.Context, orgID string, req *model.CreateTeamRequest) (*model.Team, error)
	GetByID(ctx context.Context, orgID, id string) (*model.Team, error)
	ListByOrg(ctx context.Context, orgID string) ([]*model.Team, error)
	Update(ctx context.Context, orgID, id string, req *model.UpdateTeamRequest) (*model.Team, error)
	Delete(ctx context.Context, orgID, id string) error
}

// CheckInRepository defines the interface for check-in data operations.
type CheckInRepository interface {
	Upsert(ctx context.Context, orgID, userID string, req *model.CreateCheckInRequest) (*model.CheckIn, error)
	GetCurrent(ctx context.Context, orgID, userID string) (*model.CheckIn, error)
	ListByWeek(ctx context.Context, orgID string, weekStart time.Time) ([]*model.CheckIn, error)
	ListByUser(ctx context.Context, orgID, userID string, limit int) ([]*model.CheckIn, error)
	CountByWeek(ctx context.Context, orgID string, weekStart time.Time) (int, error)
	ListMissingForWeek(ctx context.Context, weekStart, asOf time.Time, limit int) ([]*model.User, error)
	CreateExemption(ctx context.Context, orgID string, req *model.CreateExemptionRequest) (*model.CheckInExemption, error)
	ListExemptions(ctx context.Context, orgID string) ([]*model.CheckInExemption, error)
	DeleteExemption(ctx context.Context, orgID, id string) error
}

// ShoutoutRepository defines the interface for shoutout data operations.
type ShoutoutRepository interface {
	Create(ctx context.Context, orgID, fromUserID string, req *model.CreateShoutoutRequest) (*model.Shoutout, error)
	List(ctx context.Context, orgID string, filter model.ShoutoutFilter) ([]*model.Shoutout, error)
	CountSince(ctx context.Context, orgID string, since time.Time) (int, error)
	Delete(ctx context.Context, orgID, id string) error
	CreateCategory(ctx context.Context, orgID string, req *model.CreateCategoryRequest) (*model.ShoutoutCategory, error)
	ListCategories(ctx context.Context, orgID string) ([]*model.ShoutoutCategory, error)
	DeleteCategory(ctx context.Context, orgID, id string) error
}

// KRARepository defines the interface for key result area data operations.
type KRARepository interface {
	Create(ctx context.Context, orgID string, req *model.CreateKRARequest) (*model.KRA, error)
	GetByID(ctx context.Context, orgID, id string) (*model.KRA, error)
	List(ctx context.Context, orgID string, filter model.KRAFilter) ([]*model.KRA, error)
	UpdateStatus(ctx context.Context, orgID, id string, status model.KRAStatus) (*model.KRA, error)
	Delete(ctx context.Context, orgID, id string) error
}

// OneOnOneRepository defines the interface for one-on-one data operations.
type OneOnOneRepository interface {
	Create(ctx context.Context, orgID, managerID string, req *model.CreateOneOnOneRequest) (*model.OneOnOne, error)
	GetByID(ctx context.Context, orgID, id string) (*model.OneOnOne, error)
	ListByParticipant(ctx context.Context, orgID, userID string) ([]*model.OneOnOne, error)
	Update(ctx context.Context, orgID, id string, req *model.UpdateOneOnOneRequest) (*model.OneOnOne, error)
	Delete(ctx context.Context, orgID, id string) error
}

// PartnerApplicationRepository defines the interface for partner application data operations.
type PartnerApplicationRepository interface {
	Create(ctx context.Context, req *model.CreatePartnerApplicationRequest) (*model.PartnerApplication, error)
	List(ctx context.Context, limit, offset int) ([]*model.PartnerApplication, error)
}
