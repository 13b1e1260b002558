package httpx

import (
	"net/http"
	"strconv"

	"github.com/whirkplace/whirkplace-api/internal/service"
)

// AnalyticsHandlers serves engagement analytics.
type AnalyticsHandlers struct {
	Svc *service.AnalyticsService
}

// Summary returns the current week's engagement snapshot.
// GET /api/analytics/summary.
func (h *AnalyticsHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	summary, err := h.Svc.Summarize(r.Context(), org.ID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// Trend returns per-week participation for the trailing weeks.
// GET /api/analytics/trend?weeks=<n>.
func (h *AnalyticsHandlers) Trend(w http.ResponseWriter, r *http.Request) {
	org, ok := requireOrg(w, r)
	if !ok {
		return
	}

	weeks := 0
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			weeks = v
		}
	}

	trend, err := h.Svc.Trend(r.Context(), org.ID, weeks)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"trend": trend})
}
