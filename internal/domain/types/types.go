// Package types contains common alert types shared across the application.
package types

import (
	"encoding/json"
	"fmt"
)

// Severity is an ordered classification of how noteworthy a detected
// performance is. Comparison goes through Rank, never string comparison,
// so tiers can be renamed without breaking dedup or sort.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityExtreme
)

// Rank returns the numeric order of the severity, higher is more severe.
func (s Severity) Rank() int { return int(s) }

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityExtreme:
		return "EXTREME"
	default:
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
}

// MarshalJSON renders the severity as its tier name.
func (s Severity) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(s.String())
	if err != nil {
		return nil, fmt.Errorf("marshal severity: %w", err)
	}
	return b, nil
}

// UnmarshalJSON parses a tier name back into a severity.
func (s *Severity) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("unmarshal severity: %w", err)
	}
	switch name {
	case "LOW":
		*s = SeverityLow
	case "MEDIUM":
		*s = SeverityMedium
	case "HIGH":
		*s = SeverityHigh
	case "EXTREME":
		*s = SeverityExtreme
	default:
		return fmt.Errorf("unknown severity: %q", name)
	}
	return nil
}

// StatCategory identifies which counting stat an alert is about.
type StatCategory string

const (
	CategoryPoints   StatCategory = "PTS"
	CategoryRebounds StatCategory = "REB"
	CategoryAssists  StatCategory = "AST"
	CategorySteals   StatCategory = "STL"
	CategoryBlocks   StatCategory = "BLK"
	CategoryThrees   StatCategory = "3PM"
)

// Alert is a candidate alert emitted by a single rule for one player and
// one stat category. Ephemeral: produced by the evaluator, consumed by the
// deduplicator within the same refresh.
type Alert struct {
	PlayerID       string       `json:"player_id"`
	PlayerName     string       `json:"player_name"`
	Team           string       `json:"team"`
	GameID         string       `json:"game_id"`
	Category       StatCategory `json:"category"`
	RawValue       float64      `json:"raw_value"`
	ProjectedTotal float64      `json:"projected_total"`
	MinutesPlayed  float64      `json:"minutes_played"`
	Severity       Severity     `json:"severity"`
	Rationale      string       `json:"rationale"`
	MinuteOfGame   int          `json:"minute_of_game"`
	Projection     bool         `json:"projection"`
}

// RankedAlert is an Alert that survived deduplication, extended with the
// per-36-minute pace used as the presentation layer's secondary sort key.
type RankedAlert struct {
	Alert
	Pace float64 `json:"pace_per_36"`
}
