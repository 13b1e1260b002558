package httpx

import (
	"net/http"
	"strings"

	"github.com/whirkplace/whirkplace-api/internal/domain/plan"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// BusinessHandlers serves the self-serve signup funnel. Every route
// here is public: these are the steps a company walks through before
// any of its users can log in.
type BusinessHandlers struct {
	Orgs *service.OrganizationService
}

// Signup creates a new organization with its first admin.
// POST /api/business/signup.
func (h *BusinessHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if !DecodeJSON(w, r, &input) {
		return
	}
	if err := input.Organization.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}
	if err := input.Admin.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	result, err := h.Orgs.Signup(r.Context(), input)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}

// Plans lists the selectable plan tiers.
// GET /api/business/plans.
func (h *BusinessHandlers) Plans(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"plans": h.Orgs.ListPlans(r.Context())})
}

// SelectPlan moves an organization to the requested tier. During the
// signup funnel no session exists yet, so the organization ID rides in
// the body; authenticated callers have their own org substituted in so
// one tenant can never repoint another's plan.
// POST /api/business/select-plan.
func (h *BusinessHandlers) SelectPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrganizationID string    `json:"organization_id"`
		PlanTier       plan.Tier `json:"plan_tier"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if identity, ok := CallerIdentity(r.Context()); ok && identity.OrganizationID != "" {
		req.OrganizationID = identity.OrganizationID
	}
	if strings.TrimSpace(req.OrganizationID) == "" {
		RenderAppError(w, apperrors.Validation("organization_id is required"))
		return
	}
	if !req.PlanTier.Valid() {
		RenderAppError(w, apperrors.Validation("unknown plan tier"))
		return
	}

	org, err := h.Orgs.SelectPlan(r.Context(), req.OrganizationID, req.PlanTier)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, org)
}

// CheckoutSuccess acknowledges a completed checkout and reports the
// organization's current plan. Billing reconciliation happens out of
// band; this endpoint only gives the frontend something to land on.
// GET /api/business/checkout-success?organization_id=<id>.
func (h *BusinessHandlers) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("organization_id")
	if identity, ok := CallerIdentity(r.Context()); ok && identity.OrganizationID != "" {
		orgID = identity.OrganizationID
	}
	if orgID == "" {
		RenderAppError(w, apperrors.Validation("organization_id is required"))
		return
	}

	org, err := h.Orgs.GetByID(r.Context(), orgID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "complete",
		"plan_tier": org.PlanTier,
	})
}
