package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/courtpulse/courtpulse/internal/adapters/repository"
	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := repository.NewMemoryStore()
		ctx := context.Background()

		Convey("Then reads return empty results without error", func() {
			So(s.TopAlerts(ctx, 10), ShouldBeEmpty)
			So(s.Games(ctx), ShouldBeEmpty)
			So(s.Count(ctx), ShouldEqual, 0)
			_, _, ok := s.SnapshotInfo(ctx)
			So(ok, ShouldBeFalse)
		})

		Convey("When a refresh result is swapped in", func() {
			snap := &model.Snapshot{
				Games:     []model.Game{{GameID: "g-1", Status: model.StatusLive}},
				Source:    "balldontlie",
				FetchedAt: time.Now(),
			}
			alerts := []types.RankedAlert{
				{Alert: types.Alert{PlayerID: "p-1", Category: types.CategoryPoints, Severity: types.SeverityExtreme}},
				{Alert: types.Alert{PlayerID: "p-2", Category: types.CategoryBlocks, Severity: types.SeverityHigh}},
			}
			s.Swap(ctx, snap, alerts)

			Convey("Then TopAlerts returns capped results in stored order", func() {
				So(s.Count(ctx), ShouldEqual, 2)
				top := s.TopAlerts(ctx, 1)
				So(len(top), ShouldEqual, 1)
				So(top[0].PlayerID, ShouldEqual, "p-1")
			})

			Convey("Then a non-positive cap returns everything", func() {
				So(len(s.TopAlerts(ctx, 0)), ShouldEqual, 2)
				So(len(s.TopAlerts(ctx, -1)), ShouldEqual, 2)
			})

			Convey("Then games and snapshot info reflect the stored snapshot", func() {
				So(len(s.Games(ctx)), ShouldEqual, 1)
				source, fetchedAt, ok := s.SnapshotInfo(ctx)
				So(ok, ShouldBeTrue)
				So(source, ShouldEqual, "balldontlie")
				So(fetchedAt.IsZero(), ShouldBeFalse)
			})

			Convey("Then a second swap fully replaces the state", func() {
				s.Swap(ctx, &model.Snapshot{Source: "espn", FetchedAt: time.Now()}, nil)
				So(s.Count(ctx), ShouldEqual, 0)
				source, _, ok := s.SnapshotInfo(ctx)
				So(ok, ShouldBeTrue)
				So(source, ShouldEqual, "espn")
			})
		})
	})
}
