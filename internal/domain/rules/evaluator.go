package rules

import (
	"math"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/pace"
	"github.com/courtpulse/courtpulse/internal/domain/types"
)

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithThresholds overrides the tuned rule cutoffs.
func WithThresholds(t Thresholds) Option {
	return func(e *Evaluator) {
		e.thresholds = t
	}
}

// WithProjector sets a custom pace projector.
func WithProjector(p *pace.Projector) Option {
	return func(e *Evaluator) {
		if p != nil {
			e.projector = p
		}
	}
}

// Evaluator runs the rule cascade over single player box scores. It is pure
// computation: no I/O, no state between calls, never errors for any
// non-negative numeric input.
type Evaluator struct {
	thresholds Thresholds
	projector  *pace.Projector
}

// NewEvaluator creates an Evaluator with default thresholds and projector.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		thresholds: DefaultThresholds(),
		projector:  pace.New(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Thresholds returns the cutoffs the evaluator runs with.
func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate runs every applicable rule against the player's current line and
// returns the candidate alerts (possibly none). Players under the
// minimum-minutes cutoff are garbage-time samples and produce nothing; the
// projector is never invoked for them.
func (e *Evaluator) Evaluate(player model.PlayerBoxScore, game model.Game) []types.Alert {
	minutes := player.MinutesPlayed
	if minutes < e.thresholds.MinMinutes {
		return nil
	}

	live := game.Status != model.StatusFinished
	minuteOfGame := int(math.Floor(game.ElapsedMinutes))

	lines := e.statLines(player, game, live)

	var alerts []types.Alert
	for i := range cascade {
		r := &cascade[i]
		if !r.appliesTo(minutes, e.thresholds) {
			continue
		}
		l := lines[r.category]
		if !r.match(l, e.thresholds) {
			continue
		}
		alerts = append(alerts, types.Alert{
			PlayerID:       player.PlayerID,
			PlayerName:     player.PlayerName,
			Team:           player.Team,
			GameID:         game.GameID,
			Category:       r.category,
			RawValue:       l.raw,
			ProjectedTotal: l.projected,
			MinutesPlayed:  minutes,
			Severity:       r.severity(l, e.thresholds),
			Rationale:      r.rationale(l),
			MinuteOfGame:   minuteOfGame,
			Projection:     r.projection && live,
		})
	}
	return alerts
}

// statLines builds the per-category view the rules examine. Minutes are
// known to be at or above the minimum here, so the rate division is safe.
func (e *Evaluator) statLines(player model.PlayerBoxScore, game model.Game, live bool) map[types.StatCategory]statLine {
	minutes := player.MinutesPlayed
	build := func(cat types.StatCategory, raw float64) statLine {
		return statLine{
			category:  cat,
			raw:       raw,
			perMinute: raw / minutes,
			projected: e.projector.Project(raw, game.ElapsedMinutes, game.Status),
			minutes:   minutes,
			live:      live,
		}
	}
	return map[types.StatCategory]statLine{
		types.CategoryPoints:   build(types.CategoryPoints, player.Points),
		types.CategoryRebounds: build(types.CategoryRebounds, player.Rebounds),
		types.CategoryAssists:  build(types.CategoryAssists, player.Assists),
		types.CategorySteals:   build(types.CategorySteals, player.Steals),
		types.CategoryBlocks:   build(types.CategoryBlocks, player.Blocks),
		types.CategoryThrees:   build(types.CategoryThrees, player.ThreePointersMade),
	}
}

// appliesTo checks the rule's regime against the player's minutes.
func (r *rule) appliesTo(minutes float64, t Thresholds) bool {
	switch r.regime {
	case regimeLowMinutes:
		return minutes < t.LowMinutesCutoff
	case regimeFull:
		return minutes >= t.LowMinutesCutoff
	case regimeAny:
		return true
	default:
		return false
	}
}
