// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/courtpulse/courtpulse/internal/domain/types"
)

// AlertsDependencies defines the interface for alert queries.
type AlertsDependencies interface {
	Alerts(ctx context.Context, limit int) []types.RankedAlert
}

// AlertsHandler handles ranked alert requests.
type AlertsHandler struct {
	deps     AlertsDependencies
	maxLimit int
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(deps AlertsDependencies, maxLimit int) *AlertsHandler {
	return &AlertsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetAlerts handles GET /alerts?limit=N requests. Without a limit the
// handler serves the configured maximum.
func (h *AlertsHandler) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		n = parsed
		if n > h.maxLimit {
			n = h.maxLimit
		}
	}

	alerts := h.deps.Alerts(r.Context(), n)
	if alerts == nil {
		alerts = []types.RankedAlert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}
