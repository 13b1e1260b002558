package httpx

import (
	"net/http"

	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// UserHandlers serves organization member management.
type UserHandlers struct {
	Svc *service.UserService
}

// Create adds a member to the caller's organization.
// POST /api/users.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	user, err := h.Svc.Create(r.Context(), org.ID, &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, user)
}

// List returns members of the caller's organization, optionally
// filtered by team.
// GET /api/users?team_id=<id>&limit=<n>&offset=<n>.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var teamID *string
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		teamID = &raw
	}
	limit, offset := parsePagination(r, 50, 200)

	users, err := h.Svc.List(r.Context(), org.ID, teamID, limit, offset)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Get returns one member of the caller's organization.
// GET /api/users/{id}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	user, err := h.Svc.GetByID(r.Context(), org.ID, r.PathValue("id"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Update applies a partial update to a member.
// PATCH /api/users/{id}.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	user, err := h.Svc.Update(r.Context(), org.ID, r.PathValue("id"), &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Deactivate soft-disables a member's account. Records stay for
// history; the user simply cannot log in anymore.
// DELETE /api/users/{id}.
func (h *UserHandlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Deactivate(r.Context(), org.ID, r.PathValue("id")); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
