// Package rules evaluates player box scores against the alert rule cascade.
package rules

// Thresholds holds every tuned cutoff the rule cascade reads. The values are
// deliberately configuration, not code: they were tuned by watching output,
// not derived statistically, so deployments can override any of them.
type Thresholds struct {
	// MinMinutes excludes garbage-time samples: below this the evaluator
	// emits nothing and the projector is never invoked.
	MinMinutes float64 `koanf:"min_minutes"`

	// LowMinutesCutoff splits the bench-spark regime from the full regime.
	LowMinutesCutoff float64 `koanf:"low_minutes_cutoff"`

	// Bench (low-minutes) regime.
	BenchPointsPerMinute  float64 `koanf:"bench_points_per_minute"`
	BenchPointsFloor      float64 `koanf:"bench_points_floor"`
	BenchThrees           float64 `koanf:"bench_threes"`
	BenchThreesMaxMinutes float64 `koanf:"bench_threes_max_minutes"`

	// Full regime: absolute elite cutoffs.
	PointsElite   float64 `koanf:"points_elite"`
	ReboundsElite float64 `koanf:"rebounds_elite"`
	AssistsElite  float64 `koanf:"assists_elite"`

	// Full regime: pace cutoffs (raw floor + per-minute rate), with the
	// projected total deciding HIGH vs MEDIUM.
	PointsPace       float64 `koanf:"points_pace"`
	PointsPaceRate   float64 `koanf:"points_pace_rate"`
	PointsPaceHigh   float64 `koanf:"points_pace_high"`
	ReboundsPace     float64 `koanf:"rebounds_pace"`
	ReboundsPaceRate float64 `koanf:"rebounds_pace_rate"`
	ReboundsPaceHigh float64 `koanf:"rebounds_pace_high"`
	AssistsPace      float64 `koanf:"assists_pace"`
	AssistsPaceRate  float64 `koanf:"assists_pace_rate"`
	AssistsPaceHigh  float64 `koanf:"assists_pace_high"`

	// Specialist regime: absolute counts, any minutes.
	BlocksHigh    float64 `koanf:"blocks_high"`
	BlocksExtreme float64 `koanf:"blocks_extreme"`
	StealsHigh    float64 `koanf:"steals_high"`
	StealsExtreme float64 `koanf:"steals_extreme"`
	ThreesHigh    float64 `koanf:"threes_high"`
	ThreesExtreme float64 `koanf:"threes_extreme"`
}

// DefaultThresholds returns the tuned values the service ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinMinutes:       2,
		LowMinutesCutoff: 15,

		BenchPointsPerMinute:  1.1,
		BenchPointsFloor:      8,
		BenchThrees:           3,
		BenchThreesMaxMinutes: 10,

		PointsElite:   25,
		ReboundsElite: 15,
		AssistsElite:  12,

		PointsPace:       15,
		PointsPaceRate:   0.75,
		PointsPaceHigh:   40,
		ReboundsPace:     9,
		ReboundsPaceRate: 0.45,
		ReboundsPaceHigh: 18,
		AssistsPace:      7,
		AssistsPaceRate:  0.35,
		AssistsPaceHigh:  14,

		BlocksHigh:    3,
		BlocksExtreme: 4,
		StealsHigh:    3,
		StealsExtreme: 4,
		ThreesHigh:    5,
		ThreesExtreme: 7,
	}
}
