package httpx

import (
	"net/http"

	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

// ShoutoutHandlers serves peer recognition and its categories.
type ShoutoutHandlers struct {
	Svc *service.ShoutoutService
}

// Create sends a shoutout from the caller to a teammate.
// POST /api/shoutouts.
func (h *ShoutoutHandlers) Create(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}
	identity, _ := CallerIdentity(r.Context())

	var req model.CreateShoutoutRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	shoutout, err := h.Svc.Create(r.Context(), org.ID, identity.UserID, &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, shoutout)
}

// List returns the organization's shoutout feed, newest first.
// GET /api/shoutouts?to_user_id=&from_user_id=&category_id=&limit=&offset=.
func (h *ShoutoutHandlers) List(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	limit, offset := parsePagination(r, 50, 200)
	filter := model.ShoutoutFilter{
		ToUserID:   r.URL.Query().Get("to_user_id"),
		FromUserID: r.URL.Query().Get("from_user_id"),
		CategoryID: r.URL.Query().Get("category_id"),
		Limit:      limit,
		Offset:     offset,
	}

	shoutouts, err := h.Svc.List(r.Context(), org.ID, filter)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"shoutouts": shoutouts})
}

// Delete removes a shoutout, e.g. for moderation.
// DELETE /api/shoutouts/{id}.
func (h *ShoutoutHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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

// CreateCategory adds a shoutout category.
// POST /api/shoutouts/categories.
func (h *ShoutoutHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	var req model.CreateCategoryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RenderAppError(w, apperrors.Validation(err.Error()))
		return
	}

	category, err := h.Svc.CreateCategory(r.Context(), org.ID, &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, category)
}

// ListCategories returns the organization's shoutout categories.
// GET /api/shoutouts/categories.
func (h *ShoutoutHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	categories, err := h.Svc.ListCategories(r.Context(), org.ID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// DeleteCategory removes a category. Existing shoutouts keep their
// text and simply lose the label.
// DELETE /api/shoutouts/categories/{id}.
func (h *ShoutoutHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	if err := h.Svc.DeleteCategory(r.Context(), org.ID, r.PathValue("id")); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
