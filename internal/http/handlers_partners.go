package httpx

import (
	"net/http"

	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// PartnerHandlers serves the partner program: a public application
// form and a platform-operator listing.
type PartnerHandlers struct {
	Svc *service.PartnerService
}

// Apply accepts a partner program application from the public site.
// POST /api/partners/applications.
func (h *PartnerHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePartnerApplicationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	app, err := h.Svc.Apply(r.Context(), &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}

// List returns partner applications, newest first.
// GET /api/admin/partner-applications.
func (h *PartnerHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50, 200)
	apps, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}
