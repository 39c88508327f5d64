// Package engine orchestrates the alert pipeline over one refresh snapshot.
package engine

import (
	"context"
	"time"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/rank"
	"github.com/courtpulse/courtpulse/internal/domain/rules"
	"github.com/courtpulse/courtpulse/internal/domain/types"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/metrics"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithEvaluator sets a custom rule evaluator.
func WithEvaluator(e *rules.Evaluator) Option {
	return func(eng *Engine) {
		if e != nil {
			eng.evaluator = e
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(eng *Engine) {
		if l != nil {
			eng.logger = l
		}
	}
}

// Engine feeds every player in a snapshot through the rule evaluator and
// ranks the result. It holds no state between invocations: every call is
// deterministic over its inputs and safe to run concurrently with others.
type Engine struct {
	evaluator *rules.Evaluator
	logger    logger.Logger
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		evaluator: rules.NewEvaluator(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}

	return e
}

// ComputeAlerts evaluates every player against its game and returns the
// deduplicated, ranked alert set. Players referencing a game missing from
// the snapshot are stale data and are skipped, not errors.
func (e *Engine) ComputeAlerts(ctx context.Context, players []model.PlayerBoxScore, games []model.Game) []types.RankedAlert {
	start := time.Now()

	byID := make(map[string]model.Game, len(games))
	for _, g := range games {
		byID[g.GameID] = g
	}

	var candidates []types.Alert
	skipped := 0
	for _, p := range players {
		g, ok := byID[p.GameID]
		if !ok {
			skipped++
			continue
		}
		candidates = append(candidates, e.evaluator.Evaluate(p, g)...)
	}

	ranked := rank.Rank(candidates)

	metrics.RecordEngineDuration(time.Since(start).Seconds())
	for _, a := range ranked {
		metrics.RecordAlertEmitted(a.Severity.String(), string(a.Category))
	}

	if skipped > 0 {
		e.logger.Debug(ctx, "skipped players with unknown game",
			logger.Int("skipped", skipped),
		)
	}
	e.logger.Debug(ctx, "computed alerts",
		logger.Int("players", len(players)),
		logger.Int("games", len(games)),
		logger.Int("candidates", len(candidates)),
		logger.Int("alerts", len(ranked)),
	)

	return ranked
}
