package model

// PlayerBoxScore carries one player's current-game counting stats.
// All stat fields are non-negative and accumulate monotonically within a
// game; upstream feeds that omit a field leave it at zero.
type PlayerBoxScore struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	GameID     string `json:"game_id"`

	MinutesPlayed     float64 `json:"minutes_played"`
	Points            float64 `json:"points"`
	Rebounds          float64 `json:"rebounds"`
	Assists           float64 `json:"assists"`
	Steals            float64 `json:"steals"`
	Blocks            float64 `json:"blocks"`
	ThreePointersMade float64 `json:"three_pointers_made"`
}
