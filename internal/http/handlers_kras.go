package httpx

import (
	"net/http"
	"strings"

	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// KRAHandlers serves key result areas.
type KRAHandlers struct {
	Svc *service.KRAService

	// TestSeedEnabled exposes the /api/test/kra endpoints used by
	// end-to-end suites. Never enabled in production.
	TestSeedEnabled bool
}

// Create assigns a KRA to a user.
// POST /api/kras.
func (h *KRAHandlers) Create(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var req model.CreateKRARequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	kra, err := h.Svc.Create(r.Context(), org.ID, &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, kra)
}

// List returns KRAs, optionally filtered by assignee and status.
// GET /api/kras?user_id=<id>&status=<s1,s2>.
func (h *KRAHandlers) List(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	filter := model.KRAFilter{UserID: r.URL.Query().Get("user_id")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			status := model.KRAStatus(strings.TrimSpace(s))
			if !status.Valid() {
				RenderAppError(w, apperrors.Validation("unknown status: "+string(status)))
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	kras, err := h.Svc.List(r.Context(), org.ID, filter)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"kras": kras})
}

// Get returns one KRA.
// GET /api/kras/{id}.
func (h *KRAHandlers) Get(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	kra, err := h.Svc.GetByID(r.Context(), org.ID, r.PathValue("id"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, kra)
}

// UpdateStatus moves a KRA to a new status.
// PATCH /api/kras/{id}/status.
func (h *KRAHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var req model.UpdateKRAStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	kra, err := h.Svc.UpdateStatus(r.Context(), org.ID, r.PathValue("id"), req.Status)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, kra)
}

// Delete removes a KRA.
// DELETE /api/kras/{id}.
func (h *KRAHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), org.ID, r.PathValue("id")); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TestSeed creates a KRA for an explicit organization without going
// through the pipeline. End-to-end suites use it to set up fixtures;
// the route 404s unless test seeding is enabled for the environment.
// POST /api/test/kra/seed.
func (h *KRAHandlers) TestSeed(w http.ResponseWriter, r *http.Request) {
	if !h.TestSeedEnabled {
		http.NotFound(w, r)
		return
	}

	var req struct {
		OrganizationID string `json:"organization_id"`
		model.CreateKRARequest
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.OrganizationID) == "" {
		RenderAppError(w, apperrors.Validation("organization_id is required"))
		return
	}
	if err := req.CreateKRARequest.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	kra, err := h.Svc.Create(r.Context(), req.OrganizationID, &req.CreateKRARequest)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, kra)
}
