// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/types"
)

// SnapshotDependencies defines the interface for pushed snapshots.
type SnapshotDependencies interface {
	IngestSnapshot(ctx context.Context, snap *model.Snapshot) error
	Alerts(ctx context.Context, limit int) []types.RankedAlert
}

// SnapshotHandler handles pushed snapshot requests.
type SnapshotHandler struct {
	deps SnapshotDependencies
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps SnapshotDependencies) *SnapshotHandler {
	return &SnapshotHandler{deps: deps}
}

// HandlePostSnapshot handles POST /snapshot requests. A pushed snapshot
// replaces the current state the same way a fetched one does.
func (h *SnapshotHandler) HandlePostSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	snap := &model.Snapshot{
		Games:     req.Games,
		Players:   req.Players,
		Source:    req.Source,
		FetchedAt: time.Now(),
	}
	if err := h.deps.IngestSnapshot(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusAccepted, ackResponse{
		Status: "accepted",
		Alerts: len(h.deps.Alerts(r.Context(), 0)),
	})
}
