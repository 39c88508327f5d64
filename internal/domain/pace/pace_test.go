package pace_test

import (
	"math"
	"testing"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/pace"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProjector(t *testing.T) {
	Convey("Given a projector with default configuration", t, func() {
		p := pace.New()

		Convey("When the game is finished", func() {
			Convey("Then the actual value stands, whatever the clock says", func() {
				So(p.Project(30, 48, model.StatusFinished), ShouldEqual, 30)
				So(p.Project(30, 12, model.StatusFinished), ShouldEqual, 30)
				So(p.Project(0, 0, model.StatusFinished), ShouldEqual, 0)
			})
		})

		Convey("When the game is live at halftime", func() {
			Convey("Then a stat doubles", func() {
				So(p.Project(14, 24, model.StatusLive), ShouldEqual, 28)
			})
		})

		Convey("When the game just started", func() {
			Convey("Then elapsed time is clamped to the floor, never dividing by zero", func() {
				got := p.Project(4, 0, model.StatusLive)
				So(math.IsInf(got, 1), ShouldBeFalse)
				So(math.IsNaN(got), ShouldBeFalse)
				// floor of 4 minutes => progress 1/12
				So(got, ShouldEqual, 48)
			})

			Convey("Then near-zero elapsed behaves like the floor", func() {
				So(p.Project(4, 0.1, model.StatusLive), ShouldEqual, p.Project(4, 0, model.StatusLive))
			})
		})

		Convey("When the clock runs past regulation", func() {
			Convey("Then progress caps at 1 and the raw value is kept", func() {
				So(p.Project(33, 53, model.StatusLive), ShouldEqual, 33)
				So(p.Progress(53), ShouldEqual, 1)
			})
		})

		Convey("When raw value increases at a fixed clock", func() {
			Convey("Then the projection never decreases", func() {
				prev := 0.0
				for raw := 0.0; raw <= 40; raw++ {
					got := p.Project(raw, 18, model.StatusLive)
					So(got, ShouldBeGreaterThanOrEqualTo, prev)
					prev = got
				}
			})
		})
	})

	Convey("Given a projector with overridden constants", t, func() {
		p := pace.New(
			pace.WithFullGameMinutes(40),
			pace.WithFloorMinutes(2),
		)

		Convey("Then progress uses the configured duration", func() {
			So(p.Progress(20), ShouldEqual, 0.5)
			So(p.Progress(1), ShouldEqual, 0.05)
		})

		Convey("Then a sub-minimum floor override is ignored", func() {
			q := pace.New(pace.WithFloorMinutes(0))
			So(q.Progress(0), ShouldBeGreaterThan, 0)
		})
	})
}

func TestPer36(t *testing.T) {
	Convey("Given the per-36 pace helper", t, func() {
		Convey("Then it should scale a rate to 36 minutes", func() {
			So(pace.Per36(18, 18), ShouldEqual, 36)
			So(pace.Per36(10, 20), ShouldEqual, 18)
		})

		Convey("Then zero minutes should yield zero, not infinity", func() {
			So(pace.Per36(12, 0), ShouldEqual, 0)
		})
	})
}
