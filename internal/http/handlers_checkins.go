package httpx

import (
	"net/http"
	"time"

	domainauth "github.com/whirkplace/whirkplace-api/internal/domain/auth"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// CheckInHandlers serves weekly check-ins and reminder exemptions.
type CheckInHandlers struct {
	Svc *service.CheckInService
}

// Submit records the caller's check-in for the current week. Submitting
// twice in one week overwrites the earlier answers.
// POST /api/checkins.
func (h *CheckInHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	var req model.CreateCheckInRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	checkIn, err := h.Svc.Submit(r.Context(), org.ID, identity.UserID, &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, checkIn)
}

// Current returns the caller's check-in for the current week, or null
// if they have not submitted yet.
// GET /api/checkins/current.
func (h *CheckInHandlers) Current(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	checkIn, err := h.Svc.Current(r.Context(), org.ID, identity.UserID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"check_in": checkIn})
}

// Week returns the organization's check-ins for one week alongside
// participation counts. Defaults to the current week; managers use
// ?at=<RFC3339> to look back.
// GET /api/checkins/week.
func (h *CheckInHandlers) Week(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	at := time.Now().UTC()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			RenderAppError(w, apperrors.Validation("at must be an RFC3339 timestamp"))
			return
		}
		at = parsed
	}

	summary, err := h.Svc.Week(r.Context(), org.ID, at)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// History returns past check-ins for a user, newest first. Members see
// their own history; managers and up may read anyone's in the org.
// GET /api/checkins/history?user_id=<id>&limit=<n>.
func (h *CheckInHandlers) History(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = identity.UserID
	}
	if userID != identity.UserID && !identity.Role.AtLeast(domainauth.RoleManager) {
		RenderAppError(w, apperrors.Forbidden("cannot read another user's check-in history"))
		return
	}
	limit, _ := parsePagination(r, 26, 104)

	history, err := h.Svc.History(r.Context(), org.ID, userID, limit)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"check_ins": history})
}

// CreateExemption excuses a user from check-in reminders for a window.
// POST /api/checkins/exemptions.
func (h *CheckInHandlers) CreateExemption(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var req model.CreateExemptionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	exemption, err := h.Svc.CreateExemption(r.Context(), org.ID, &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, exemption)
}

// ListExemptions returns the organization's reminder exemptions.
// GET /api/checkins/exemptions.
func (h *CheckInHandlers) ListExemptions(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	exemptions, err := h.Svc.ListExemptions(r.Context(), org.ID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"exemptions": exemptions})
}

// DeleteExemption removes a reminder exemption.
// DELETE /api/checkins/exemptions/{id}.
func (h *CheckInHandlers) DeleteExemption(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	if err := h.Svc.DeleteExemption(r.Context(), org.ID, r.PathValue("id")); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
