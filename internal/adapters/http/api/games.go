// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/courtpulse/courtpulse/internal/domain/model"
)

// GamesDependencies defines the interface for game queries.
type GamesDependencies interface {
	Games(ctx context.Context) []model.Game
}

// GamesHandler handles game listing requests.
type GamesHandler struct {
	deps GamesDependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GamesDependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

// HandleGetGames handles GET /games requests.
func (h *GamesHandler) HandleGetGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	games := h.deps.Games(r.Context())
	if games == nil {
		games = []model.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}
