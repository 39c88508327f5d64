// Package rank collapses candidate alerts to one per player and stat
// category and orders the survivors for presentation.
package rank

import (
	"sort"

	"github.com/courtpulse/courtpulse/internal/domain/pace"
	"github.com/courtpulse/courtpulse/internal/domain/types"
)

// dedupKey is the identity under which candidates collapse.
type dedupKey struct {
	playerID string
	category types.StatCategory
}

// Rank deduplicates candidates by (player, category), keeping the highest
// severity (first encountered wins a tie), then sorts descending by severity
// and raw value. Idempotent and uncapped; presentation applies any limit.
func Rank(candidates []types.Alert) []types.RankedAlert {
	best := make(map[dedupKey]int, len(candidates))
	order := make([]dedupKey, 0, len(candidates))

	for i, c := range candidates {
		key := dedupKey{playerID: c.PlayerID, category: c.Category}
		prev, seen := best[key]
		if !seen {
			best[key] = i
			order = append(order, key)
			continue
		}
		// Strictly higher only: equal severity keeps the earlier candidate.
		if c.Severity.Rank() > candidates[prev].Severity.Rank() {
			best[key] = i
		}
	}

	ranked := make([]types.RankedAlert, 0, len(order))
	for _, key := range order {
		c := candidates[best[key]]
		ranked = append(ranked, types.RankedAlert{
			Alert: c,
			Pace:  pace.Per36(c.RawValue, c.MinutesPlayed),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Severity != ranked[j].Severity {
			return ranked[i].Severity.Rank() > ranked[j].Severity.Rank()
		}
		return ranked[i].RawValue > ranked[j].RawValue
	})

	return ranked
}
