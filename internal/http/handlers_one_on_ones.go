package httpx

import (
	"net/http"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// OneOnOneHandlers serves manager/member one-on-one meetings. Notes
// are private to the two participants, so reads and writes go through
// the service's participant check; admins may moderate.
type OneOnOneHandlers struct {
	Svc *service.OneOnOneService
}

func callerIsAdmin(identity domainauth.Identity) bool {
	return identity.Role.AtLeast(domainauth.RoleAdmin)
}

// Create schedules a one-on-one with the caller as manager.
// POST /api/one-on-ones.
func (h *OneOnOneHandlers) Create(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	var req model.CreateOneOnOneRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	meeting, err := h.Svc.Create(r.Context(), org.ID, identity.UserID, &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, meeting)
}

// List returns the caller's one-on-ones, soonest first. Admins may
// list another participant's via ?user_id.
// GET /api/one-on-ones.
func (h *OneOnOneHandlers) List(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	userID := identity.UserID
	if raw := r.URL.Query().Get("user_id"); raw != "" && raw != identity.UserID {
		if !callerIsAdmin(identity) {
			RenderAppError(w, apperrors.Forbidden("cannot list another user's one-on-ones"))
			return
		}
		userID = raw
	}

	meetings, err := h.Svc.ListForUser(r.Context(), org.ID, userID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"one_on_ones": meetings})
}

// Get returns one meeting if the caller participates in it.
// GET /api/one-on-ones/{id}.
func (h *OneOnOneHandlers) Get(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	meeting, err := h.Svc.GetByID(r.Context(), org.ID, r.PathValue("id"), identity.UserID, callerIsAdmin(identity))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, meeting)
}

// Update amends notes, reschedules, or toggles completion.
// PATCH /api/one-on-ones/{id}.
func (h *OneOnOneHandlers) Update(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	var req model.UpdateOneOnOneRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	meeting, err := h.Svc.Update(r.Context(), org.ID, r.PathValue("id"), identity.UserID, callerIsAdmin(identity), &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, meeting)
}

// Delete cancels a meeting.
// DELETE /api/one-on-ones/{id}.
func (h *OneOnOneHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	if err := h.Svc.Delete(r.Context(), org.ID, r.PathValue("id"), identity.UserID, callerIsAdmin(identity)); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
