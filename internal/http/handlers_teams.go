package httpx

import (
	"net/http"

	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// TeamHandlers serves team management within an organization.
type TeamHandlers struct {
	Svc *service.TeamService
}

// Create adds a team.
// POST /api/teams.
func (h *TeamHandlers) Create(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var req model.CreateTeamRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	team, err := h.Svc.Create(r.Context(), org.ID, &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, team)
}

// List returns all teams in the caller's organization.
// GET /api/teams.
func (h *TeamHandlers) List(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	teams, err := h.Svc.List(r.Context(), org.ID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

// Get returns one team.
// GET /api/teams/{id}.
func (h *TeamHandlers) Get(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	team, err := h.Svc.GetByID(r.Context(), org.ID, r.PathValue("id"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, team)
}

// Update applies a partial update to a team.
// PATCH /api/teams/{id}.
func (h *TeamHandlers) Update(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var req model.UpdateTeamRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	team, err := h.Svc.Update(r.Context(), org.ID, r.PathValue("id"), &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, team)
}

// Delete removes a team. Members keep their accounts and simply become
// teamless.
// DELETE /api/teams/{id}.
func (h *TeamHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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
