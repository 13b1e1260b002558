package httpx

import (
	"net/http"

	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
)

// featureDenied is the 403 payload for plan-gated routes. The frontend
// renders its upgrade prompt straight from these fields, so the shape
// is part of the API contract.
type featureDenied struct {
	Feature         plan.Feature `json:"feature"`
	CurrentPlan     plan.Tier    `json:"currentPlan"`
	RequiredPlan    plan.Tier    `json:"requiredPlan"`
	UpgradeRequired bool         `json:"upgradeRequired"`
}

// RequireFeature returns a route-level middleware that rejects requests
// whose organization's plan does not include the feature. Runs after
// organization resolution, so the tenant is already on the context.
func RequireFeature(feature plan.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			org, ok := requireOrg(w, r)
			if !ok {
				return
			}

			if !plan.HasFeatureAccess(org.PlanTier, feature) {
				required, _ := plan.RequiredTier(feature)
				WriteJSON(w, http.StatusForbidden, featureDenied{
					Feature:         feature,
					CurrentPlan:     org.PlanTier,
					RequiredPlan:    required,
					UpgradeRequired: true,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
