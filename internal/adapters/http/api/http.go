// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Alerts returns up to limit ranked alerts. limit <= 0 means all.
	Alerts(ctx context.Context, limit int) []types.RankedAlert

	// Games returns the games behind the current alert set.
	Games(ctx context.Context) []model.Game

	// IngestSnapshot evaluates an externally supplied snapshot.
	IngestSnapshot(ctx context.Context, snap *model.Snapshot) error

	// GetStats returns service statistics for monitoring.
	GetStats() map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	alertsHandler   *AlertsHandler
	gamesHandler    *GamesHandler
	statsHandler    *StatsHandler
	snapshotHandler *SnapshotHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// limit query parameter on /alerts.
func NewServer(deps Dependencies, maxLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		alertsHandler:   NewAlertsHandler(deps, maxLimit),
		gamesHandler:    NewGamesHandler(deps),
		statsHandler:    NewStatsHandler(deps),
		snapshotHandler: NewSnapshotHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/alerts", MetricsMiddleware(s.alertsHandler.HandleGetAlerts, "alerts"))
	mux.HandleFunc("/games", MetricsMiddleware(s.gamesHandler.HandleGetGames, "games"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/snapshot", MetricsMiddleware(s.snapshotHandler.HandlePostSnapshot, "snapshot"))
}

// snapshotRequest mirrors the wire schema for POST /snapshot.
type snapshotRequest struct {
	Games   []model.Game           `json:"games"`
	Players []model.PlayerBoxScore `json:"players"`
	Source  string                 `json:"source"`
}

func (s snapshotRequest) validate() error {
	if len(s.Games) == 0 {
		return errors.New("missing games")
	}
	for i, g := range s.Games {
		if strings.TrimSpace(g.GameID) == "" {
			return errors.New("game missing game_id")
		}
		switch g.Status {
		case model.StatusScheduled, model.StatusLive, model.StatusFinished:
		default:
			return errors.New("game " + s.Games[i].GameID + " has invalid status")
		}
	}
	for _, p := range s.Players {
		if strings.TrimSpace(p.PlayerID) == "" {
			return errors.New("player missing player_id")
		}
		if strings.TrimSpace(p.GameID) == "" {
			return errors.New("player " + p.PlayerID + " missing game_id")
		}
	}
	return nil
}

type ackResponse struct {
	Status string `json:"status"`
	Alerts int    `json:"alerts"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
