// Package model contains domain models passed between layers.
package model

import "time"

// Regulation length of an NBA game in minutes. Overtime stats still project
// against regulation, which is the convention the alert thresholds assume.
const FullGameMinutes = 48.0

// GameStatus describes where a game is in its lifecycle.
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusLive      GameStatus = "LIVE"
	StatusFinished  GameStatus = "FINISHED"
)

// Game represents one tracked game's clock state for a refresh snapshot.
// ElapsedMinutes approximates real time played and is capped at regulation
// once the game is FINISHED.
type Game struct {
	GameID         string     `json:"game_id"`
	HomeTeam       string     `json:"home_team"`
	AwayTeam       string     `json:"away_team"`
	HomeScore      int        `json:"home_score"`
	AwayScore      int        `json:"away_score"`
	Status         GameStatus `json:"status"`
	Period         int        `json:"period"`
	Clock          string     `json:"clock"`
	ElapsedMinutes float64    `json:"elapsed_minutes"`
}

// Snapshot is one refresh cycle's worth of normalized upstream data.
type Snapshot struct {
	Games     []Game           `json:"games"`
	Players   []PlayerBoxScore `json:"players"`
	Source    string           `json:"source"`
	FetchedAt time.Time        `json:"fetched_at"`
}
