package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/mocks"
	"go.uber.org/mock/gomock"
)

func newOrgService(t *testing.T) (*OrganizationService, *mocks.MockOrganizationRepository, *mocks.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	orgs := mocks.NewMockOrganizationRepository(ctrl)
	users := mocks.NewMockUserRepository(ctrl)
	svc := NewOrganizationService(OrganizationServiceOptions{Orgs: orgs, Users: users})
	return svc, orgs, users
}

func TestOrganizationService_Signup(t *testing.T) {
	svc, orgs, users := newOrgService(t)

	org := &model.Organization{ID: "org1", Name: "Acme", Slug: "acme", PlanTier: plan.TierStarter, Status: model.OrgStatusActive}
	admin := &model.User{ID: "u1", OrganizationID: "org1", Email: "founder@acme.test", Role: domainauth.RoleAdmin}

	orgs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(org, nil)
	users.EXPECT().Create(gomock.Any(), "org1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req *model.CreateUserRequest) (*model.User, error) {
			// The first user is always the org admin, whatever the body said.
			assert.Equal(t, domainauth.RoleAdmin, req.Role)
			return admin, nil
		})

	result, err := svc.Signup(context.Background(), SignupInput{
		Organization: model.CreateOrganizationRequest{Name: "Acme", Slug: "acme"},
		Admin:        model.CreateUserRequest{Email: "founder@acme.test", FirstName: "Ada", Role: domainauth.RoleMember},
	})
	require.NoError(t, err)
	assert.Equal(t, "org1", result.Organization.ID)
	assert.Equal(t, "u1", result.Admin.ID)
}

func TestOrganizationService_Signup_DuplicateSlug(t *testing.T) {
	svc, orgs, _ := newOrgService(t)

	orgs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.Conflict("slug already taken"))

	_, err := svc.Signup(context.Background(), SignupInput{
		Organization: model.CreateOrganizationRequest{Name: "Acme", Slug: "acme"},
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestOrganizationService_Signup_AdminCreationFails(t *testing.T) {
	svc, orgs, users := newOrgService(t)

	org := &model.Organization{ID: "org1"}
	orgs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(org, nil)
	users.EXPECT().Create(gomock.Any(), "org1", gomock.Any()).Return(nil, errors.New("insert failed"))

	_, err := svc.Signup(context.Background(), SignupInput{
		Organization: model.CreateOrganizationRequest{Name: "Acme", Slug: "acme"},
	})
	assert.ErrorContains(t, err, "create admin user")
}

func TestOrganizationService_ListPlans(t *testing.T) {
	svc, _, _ := newOrgService(t)

	plans := svc.ListPlans(context.Background())
	require.Len(t, plans, 3)
	assert.Equal(t, plan.TierStarter, plans[0].Tier)
	assert.Equal(t, plan.TierProfessional, plans[1].Tier)
	assert.Equal(t, plan.TierEnterprise, plans[2].Tier)

	// Features accumulate as tiers go up.
	assert.Contains(t, plans[0].Features, plan.FeatureCheckIns)
	assert.NotContains(t, plans[0].Features, plan.FeatureKRATracking)
	assert.Contains(t, plans[1].Features, plan.FeatureKRATracking)
	assert.Contains(t, plans[2].Features, plan.FeatureAdvancedAnalytics)

	// The invite-only partner tier is never offered.
	for _, p := range plans {
		assert.NotEqual(t, plan.TierPartner, p.Tier)
	}
}

func TestOrganizationService_SelectPlan(t *testing.T) {
	svc, orgs, _ := newOrgService(t)

	updated := &model.Organization{ID: "org1", PlanTier: plan.TierProfessional}
	orgs.EXPECT().UpdatePlan(gomock.Any(), "org1", plan.TierProfessional).Return(updated, nil)

	org, err := svc.SelectPlan(context.Background(), "org1", plan.TierProfessional)
	require.NoError(t, err)
	assert.Equal(t, plan.TierProfessional, org.PlanTier)
}

func TestOrganizationService_SelectPlan_PartnerTierRejected(t *testing.T) {
	svc, _, _ := newOrgService(t)

	_, err := svc.SelectPlan(context.Background(), "org1", plan.TierPartner)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestOrganizationService_UpdateStatus(t *testing.T) {
	svc, orgs, _ := newOrgService(t)

	suspended := &model.Organization{ID: "org1", Status: model.OrgStatusSuspended}
	orgs.EXPECT().UpdateStatus(gomock.Any(), "org1", model.OrgStatusSuspended).Return(suspended, nil)

	org, err := svc.UpdateStatus(context.Background(), "org1", model.OrgStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, model.OrgStatusSuspended, org.Status)
}
