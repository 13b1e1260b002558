package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
)

func serveFeatureGate(feature plan.Feature, org *model.Organization) *httptest.ResponseRecorder {
	handler := RequireFeature(feature)(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/kras", nil)
	if org != nil {
		req = req.WithContext(SetOrganizationInContext(req.Context(), org))
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRequireFeature_Allowed(t *testing.T) {
	org := &model.Organization{ID: "org1", PlanTier: plan.TierProfessional, Status: model.OrgStatusActive}
	w := serveFeatureGate(plan.FeatureKRATracking, org)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireFeature_Denied(t *testing.T) {
	org := &model.Organization{ID: "org1", PlanTier: plan.TierStarter, Status: model.OrgStatusActive}
	w := serveFeatureGate(plan.FeatureKRATracking, org)
	require.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Feature         string `json:"feature"`
		CurrentPlan     string `json:"currentPlan"`
		RequiredPlan    string `json:"requiredPlan"`
		UpgradeRequired bool   `json:"upgradeRequired"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "kra_tracking", body.Feature)
	assert.Equal(t, "starter", body.CurrentPlan)
	assert.Equal(t, "professional", body.RequiredPlan)
	assert.True(t, body.UpgradeRequired)
}

func TestRequireFeature_EnterpriseFeatureOnProfessional(t *testing.T) {
	org := &model.Organization{ID: "org1", PlanTier: plan.TierProfessional, Status: model.OrgStatusActive}
	w := serveFeatureGate(plan.FeatureAdvancedAnalytics, org)
	require.Equal(t, http.StatusForbidden, w.Code)

	var body featureDenied
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, plan.TierEnterprise, body.RequiredPlan)
}

func TestRequireFeature_PartnerTierMatchesEnterprise(t *testing.T) {
	org := &model.Organization{ID: "org1", PlanTier: plan.TierPartner, Status: model.OrgStatusActive}
	w := serveFeatureGate(plan.FeatureAdvancedAnalytics, org)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireFeature_NoOrganization(t *testing.T) {
	w := serveFeatureGate(plan.FeatureCheckIns, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "organization_required", decodeErrorCode(t, w))
}
