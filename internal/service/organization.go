package service

import (
	"context"
	"fmt"

	"github.com/whirkplace/whirkplace-api/internal/core"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

// OrganizationServiceOptions groups dependencies for OrganizationService.
type OrganizationServiceOptions struct {
	Orgs  core.OrganizationRepository
	Users core.UserRepository
}

// OrganizationService orchestrates tenant lifecycle: signup, plan
// selection, and suspension.
type OrganizationService struct {
	orgs  core.OrganizationRepository
	users core.UserRepository
}

// NewOrganizationService constructs a new OrganizationService.
func NewOrganizationService(opts OrganizationServiceOptions) *OrganizationService {
	if opts.Orgs == nil {
		panic("OrganizationRepository is required")
	}
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	return &OrganizationService{orgs: opts.Orgs, users: opts.Users}
}

// SignupInput groups parameters for business signup.
type SignupInput struct {
	Organization model.CreateOrganizationRequest
	Admin        model.CreateUserRequest
}

// SignupResult is the outcome of a business signup.
type SignupResult struct {
	Organization *model.Organization `json:"organization"`
	Admin        *model.User         `json:"admin"`
}

// Signup creates a new organization with its first admin. New tenants
// start on the starter tier until they select a plan.
func (s *OrganizationService) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	org, err := s.orgs.Create(ctx, &input.Organization)
	if err != nil {
		return nil, err
	}

	input.Admin.Role = domainauth.RoleAdmin
	admin, err := s.users.Create(ctx, org.ID, &input.Admin)
	if err != nil {
		// Leave the empty organization behind rather than risk a
		// half-rollback; signup can be retried with a new slug.
		return nil, fmt.Errorf("create admin user: %w", err)
	}

	return &SignupResult{Organization: org, Admin: admin}, nil
}

// PlanSummary describes one selectable plan tier.
type PlanSummary struct {
	Tier     plan.Tier      `json:"tier"`
	Features []plan.Feature `json:"features"`
}

// ListPlans returns the selectable plan tiers with the features each
// unlocks. The partner tier is invite-only and not listed.
func (s *OrganizationService) ListPlans(_ context.Context) []PlanSummary {
	out := make([]PlanSummary, 0, 3)
	for _, tier := range []plan.Tier{plan.TierStarter, plan.TierProfessional, plan.TierEnterprise} {
		var features []plan.Feature
		for _, avail := range plan.FeatureAvailability(tier) {
			if avail.Available {
				features = append(features, avail.Feature)
			}
		}
		out = append(out, PlanSummary{Tier: tier, Features: features})
	}
	return out
}

// SelectPlan moves an organization to the requested tier.
func (s *OrganizationService) SelectPlan(ctx context.Context, orgID string, tier plan.Tier) (*model.Organization, error) {
	if tier == plan.TierPartner {
		return nil, apperrors.Forbidden("the partner tier is invite-only")
	}
	return s.orgs.UpdatePlan(ctx, orgID, tier)
}

// GetByID retrieves an organization by ID.
func (s *OrganizationService) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	return s.orgs.GetByID(ctx, id)
}

// GetBySlug retrieves an organization by its URL slug.
func (s *OrganizationService) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	return s.orgs.GetBySlug(ctx, slug)
}

// List returns a page of organizations. Super-admin only; enforced at
// the route level.
func (s *OrganizationService) List(ctx context.Context, limit, offset int) ([]*model.Organization, error) {
	return s.orgs.List(ctx, limit, offset)
}

// UpdateStatus transitions an organization's lifecycle status.
func (s *OrganizationService) UpdateStatus(ctx context.Context, id string, status model.OrgStatus) (*model.Organization, error) {
	return s.orgs.UpdateStatus(ctx, id, status)
}
