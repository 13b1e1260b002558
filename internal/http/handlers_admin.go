package httpx

import (
	"crypto/subtle"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/migrate"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// AdminHandlers serves platform-operator endpoints. Routes using these
// are wrapped in RequireRole(super_admin).
type AdminHandlers struct {
	Orgs *service.OrganizationService
}

// ListOrganizations returns a page of tenants.
// GET /api/admin/organizations.
func (h *AdminHandlers) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50, 200)
	orgs, err := h.Orgs.List(r.Context(), limit, offset)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"organizations": orgs})
}

// GetOrganization returns one tenant.
// GET /api/admin/organizations/{id}.
func (h *AdminHandlers) GetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := h.Orgs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, org)
}

// UpdateOrganizationStatus suspends, reactivates, or soft-deletes a
// tenant. Suspension takes effect on the next request each of the
// tenant's users makes; no sessions are revoked.
// PATCH /api/admin/organizations/{id}/status.
func (h *AdminHandlers) UpdateOrganizationStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.OrgStatus `json:"status"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		RenderAppError(w, apperrors.Validation("status must be active, suspended, or deleted"))
		return
	}

	org, err := h.Orgs.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, org)
}

// EmergencyHandler is the operational escape hatch for production
// incidents where the schema drifted from the code. It re-runs the
// embedded migrations, which are idempotent, and nothing else. Hidden
// behind a deploy-time key; without one the route does not exist.
type EmergencyHandler struct {
	DB     *sql.DB
	Key    string
	Logger *slog.Logger
}

// Fix re-applies pending migrations.
// POST /api/emergency-fix-production?key=<deploy key>.
func (h *EmergencyHandler) Fix(w http.ResponseWriter, r *http.Request) {
	if h.Key == "" ||
		subtle.ConstantTimeCompare([]byte(r.URL.Query().Get("key")), []byte(h.Key)) != 1 {
		http.NotFound(w, r)
		return
	}

	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(r.Context(), "emergency fix invoked", slog.String("remote", r.RemoteAddr))

	if err := migrate.Run(r.Context(), h.DB); err != nil {
		logger.ErrorContext(r.Context(), "emergency fix failed", slog.Any("error", err))
		RenderAppError(w, apperrors.Wrap(err, apperrors.ErrCodeInternal, "migration run failed"))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "action": "migrations_applied"})
}
