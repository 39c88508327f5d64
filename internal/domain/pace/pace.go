// Package pace projects partial-game stat lines to full-game totals.
package pace

import (
	"math"

	"github.com/courtpulse/courtpulse/internal/domain/model"
)

// Default projection constants.
const (
	// defaultFloorMinutes clamps elapsed time before division so the opening
	// minute of a game cannot blow a 4-point burst up to a 200-point pace.
	defaultFloorMinutes = 4.0

	// referenceMinutes is the fixed duration pace rates normalize to.
	referenceMinutes = 36.0
)

// Option applies a configuration option to the Projector.
type Option func(*Projector)

// WithFullGameMinutes overrides the full-game duration used for progress.
func WithFullGameMinutes(minutes float64) Option {
	return func(p *Projector) {
		if minutes > 0 {
			p.fullGame = minutes
		}
	}
}

// WithFloorMinutes overrides the early-game clamp. Values below one minute
// are ignored; the floor exists to keep the progress divisor sane.
func WithFloorMinutes(minutes float64) Option {
	return func(p *Projector) {
		if minutes >= 1 {
			p.floor = minutes
		}
	}
}

// Projector extrapolates a raw stat value to a full-game estimate from the
// game clock. It is pure and safe for concurrent use.
type Projector struct {
	fullGame float64
	floor    float64
}

// New creates a Projector with the default regulation-game configuration.
func New(opts ...Option) *Projector {
	p := &Projector{
		fullGame: model.FullGameMinutes,
		floor:    defaultFloorMinutes,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Progress returns the normalized game-progress fraction in (0, 1], with
// elapsed minutes clamped to [floor, fullGame].
func (p *Projector) Progress(elapsedMinutes float64) float64 {
	elapsed := math.Min(math.Max(elapsedMinutes, p.floor), p.fullGame)
	return elapsed / p.fullGame
}

// Project extrapolates rawValue to a full-game total. For FINISHED games the
// actual value stands; no extrapolation past the final buzzer.
func (p *Projector) Project(rawValue, elapsedMinutes float64, status model.GameStatus) float64 {
	if status == model.StatusFinished {
		return rawValue
	}
	return math.Round(rawValue / p.Progress(elapsedMinutes))
}

// Per36 normalizes a raw value to the fixed reference duration. Used as the
// secondary ranking key. Returns zero when no minutes were played.
func Per36(rawValue, minutesPlayed float64) float64 {
	if minutesPlayed <= 0 {
		return 0
	}
	return rawValue / minutesPlayed * referenceMinutes
}
