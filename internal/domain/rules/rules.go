package rules

import (
	"fmt"

	"github.com/courtpulse/courtpulse/internal/domain/types"
)

// regime restricts which minutes-played band a rule applies to.
type regime int

const (
	regimeLowMinutes regime = iota // below the low-minutes cutoff
	regimeFull                     // at or above the low-minutes cutoff
	regimeAny                      // independent of the split
)

// statLine is the evaluated view of one stat category for one player that a
// rule's predicate examines.
type statLine struct {
	category  types.StatCategory
	raw       float64
	perMinute float64
	projected float64
	minutes   float64
	live      bool
}

// rule is one entry of the declarative cascade: a predicate plus the
// severity and fixed rationale it emits when matched. Rules never mutate
// the line and never error.
type rule struct {
	name       string
	category   types.StatCategory
	regime     regime
	projection bool
	match      func(l statLine, t Thresholds) bool
	severity   func(l statLine, t Thresholds) types.Severity
	rationale  func(l statLine) string
}

func fixed(s types.Severity) func(statLine, Thresholds) types.Severity {
	return func(statLine, Thresholds) types.Severity { return s }
}

// cascade is the ordered rule table. Order matters only for the dedup
// tie-break (first encountered wins among equal severities), not for
// whether a rule fires.
var cascade = []rule{
	{
		name:     "bench_spark",
		category: types.CategoryPoints,
		regime:   regimeLowMinutes,
		match: func(l statLine, t Thresholds) bool {
			return l.perMinute > t.BenchPointsPerMinute && l.raw >= t.BenchPointsFloor
		},
		severity: fixed(types.SeverityHigh),
		rationale: func(l statLine) string {
			return fmt.Sprintf("bench spark: %.0f points in just %.0f minutes", l.raw, l.minutes)
		},
	},
	{
		name:     "bench_deep_threat",
		category: types.CategoryThrees,
		regime:   regimeLowMinutes,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.BenchThrees && l.minutes <= t.BenchThreesMaxMinutes
		},
		severity: fixed(types.SeverityHigh),
		rationale: func(l statLine) string {
			return fmt.Sprintf("instant offense: %.0f threes in %.0f minutes off the bench", l.raw, l.minutes)
		},
	},
	{
		name:     "elite_scoring",
		category: types.CategoryPoints,
		regime:   regimeFull,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.PointsElite
		},
		severity: fixed(types.SeverityExtreme),
		rationale: func(l statLine) string {
			return fmt.Sprintf("%.0f points already on the board", l.raw)
		},
	},
	{
		name:       "scoring_pace",
		category:   types.CategoryPoints,
		regime:     regimeFull,
		projection: true,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.PointsPace && l.perMinute >= t.PointsPaceRate
		},
		severity: func(l statLine, t Thresholds) types.Severity {
			if l.projected >= t.PointsPaceHigh {
				return types.SeverityHigh
			}
			return types.SeverityMedium
		},
		rationale: func(l statLine) string {
			return fmt.Sprintf("on pace for %.0f points (%.0f so far)", l.projected, l.raw)
		},
	},
	{
		name:     "elite_glass",
		category: types.CategoryRebounds,
		regime:   regimeFull,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.ReboundsElite
		},
		severity: fixed(types.SeverityExtreme),
		rationale: func(l statLine) string {
			return fmt.Sprintf("%.0f rebounds, owning the glass", l.raw)
		},
	},
	{
		name:       "rebounding_pace",
		category:   types.CategoryRebounds,
		regime:     regimeFull,
		projection: true,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.ReboundsPace && l.perMinute >= t.ReboundsPaceRate
		},
		severity: func(l statLine, t Thresholds) types.Severity {
			if l.projected >= t.ReboundsPaceHigh {
				return types.SeverityHigh
			}
			return types.SeverityMedium
		},
		rationale: func(l statLine) string {
			return fmt.Sprintf("on pace for %.0f rebounds (%.0f so far)", l.projected, l.raw)
		},
	},
	{
		name:     "elite_playmaking",
		category: types.CategoryAssists,
		regime:   regimeFull,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.AssistsElite
		},
		severity: fixed(types.SeverityExtreme),
		rationale: func(l statLine) string {
			return fmt.Sprintf("%.0f assists, running the whole offense", l.raw)
		},
	},
	{
		name:       "playmaking_pace",
		category:   types.CategoryAssists,
		regime:     regimeFull,
		projection: true,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.AssistsPace && l.perMinute >= t.AssistsPaceRate
		},
		severity: func(l statLine, t Thresholds) types.Severity {
			if l.projected >= t.AssistsPaceHigh {
				return types.SeverityHigh
			}
			return types.SeverityMedium
		},
		rationale: func(l statLine) string {
			return fmt.Sprintf("on pace for %.0f assists (%.0f so far)", l.projected, l.raw)
		},
	},
	{
		name:     "shot_blocking",
		category: types.CategoryBlocks,
		regime:   regimeAny,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.BlocksHigh
		},
		severity: func(l statLine, t Thresholds) types.Severity {
			if l.raw >= t.BlocksExtreme {
				return types.SeverityExtreme
			}
			return types.SeverityHigh
		},
		rationale: func(l statLine) string {
			return fmt.Sprintf("%.0f blocks, nothing easy at the rim", l.raw)
		},
	},
	{
		name:     "ball_hawking",
		category: types.CategorySteals,
		regime:   regimeAny,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.StealsHigh
		},
		severity: func(l statLine, t Thresholds) types.Severity {
			if l.raw >= t.StealsExtreme {
				return types.SeverityExtreme
			}
			return types.SeverityHigh
		},
		rationale: func(l statLine) string {
			return fmt.Sprintf("%.0f steals, living in the passing lanes", l.raw)
		},
	},
	{
		name:     "deep_volume",
		category: types.CategoryThrees,
		regime:   regimeAny,
		match: func(l statLine, t Thresholds) bool {
			return l.raw >= t.ThreesHigh
		},
		severity: func(l statLine, t Thresholds) types.Severity {
			if l.raw >= t.ThreesExtreme {
				return types.SeverityExtreme
			}
			return types.SeverityHigh
		},
		rationale: func(l statLine) string {
			return fmt.Sprintf("%.0f made threes and still firing", l.raw)
		},
	},
}
