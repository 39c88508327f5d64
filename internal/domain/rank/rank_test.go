package rank_test

import (
	"testing"

	"github.com/courtpulse/courtpulse/internal/domain/rank"
	"github.com/courtpulse/courtpulse/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func candidate(player string, cat types.StatCategory, raw float64, sev types.Severity, rationale string) types.Alert {
	return types.Alert{
		PlayerID:      player,
		Category:      cat,
		RawValue:      raw,
		MinutesPlayed: 18,
		Severity:      sev,
		Rationale:     rationale,
	}
}

func TestRank(t *testing.T) {
	Convey("Given candidates sharing a dedup key", t, func() {
		in := []types.Alert{
			candidate("p-1", types.CategoryPoints, 25, types.SeverityMedium, "pace"),
			candidate("p-1", types.CategoryPoints, 25, types.SeverityExtreme, "elite"),
		}

		got := rank.Rank(in)

		Convey("Then exactly one entry survives per (player, category)", func() {
			So(len(got), ShouldEqual, 1)
		})

		Convey("Then the surviving entry carries the maximum severity", func() {
			So(got[0].Severity, ShouldEqual, types.SeverityExtreme)
			So(got[0].Rationale, ShouldEqual, "elite")
		})
	})

	Convey("Given equal-severity duplicates", t, func() {
		in := []types.Alert{
			candidate("p-1", types.CategoryThrees, 5, types.SeverityHigh, "first"),
			candidate("p-1", types.CategoryThrees, 5, types.SeverityHigh, "second"),
		}

		got := rank.Rank(in)

		Convey("Then the first-encountered candidate is retained", func() {
			So(len(got), ShouldEqual, 1)
			So(got[0].Rationale, ShouldEqual, "first")
		})
	})

	Convey("Given a mixed candidate set", t, func() {
		in := []types.Alert{
			candidate("p-1", types.CategoryPoints, 18, types.SeverityMedium, "pace"),
			candidate("p-2", types.CategoryBlocks, 4, types.SeverityExtreme, "blocks"),
			candidate("p-3", types.CategoryPoints, 27, types.SeverityExtreme, "elite"),
			candidate("p-4", types.CategorySteals, 3, types.SeverityHigh, "steals"),
		}

		got := rank.Rank(in)

		Convey("Then ordering is severity first, raw value second, both descending", func() {
			So(len(got), ShouldEqual, 4)
			So(got[0].PlayerID, ShouldEqual, "p-3") // EXTREME, raw 27
			So(got[1].PlayerID, ShouldEqual, "p-2") // EXTREME, raw 4
			So(got[2].PlayerID, ShouldEqual, "p-4") // HIGH
			So(got[3].PlayerID, ShouldEqual, "p-1") // MEDIUM
		})

		Convey("Then ranking is idempotent over its own output", func() {
			again := rank.Rank(alertsOf(got))
			So(len(again), ShouldEqual, len(got))
			for i := range got {
				So(again[i].PlayerID, ShouldEqual, got[i].PlayerID)
				So(again[i].Category, ShouldEqual, got[i].Category)
				So(again[i].Severity, ShouldEqual, got[i].Severity)
			}
		})

		Convey("Then each entry carries a per-36 pace for secondary sorting downstream", func() {
			// 18 raw in 18 minutes is a 36-per-36 pace
			So(got[3].Pace, ShouldEqual, 36)
		})
	})

	Convey("Given no candidates", t, func() {
		Convey("Then the ranked set is empty, not nil-panicky", func() {
			So(rank.Rank(nil), ShouldBeEmpty)
			So(rank.Rank([]types.Alert{}), ShouldBeEmpty)
		})
	})
}

func alertsOf(ranked []types.RankedAlert) []types.Alert {
	out := make([]types.Alert, len(ranked))
	for i, r := range ranked {
		out[i] = r.Alert
	}
	return out
}
