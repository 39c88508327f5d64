package feed_test

import (
	"testing"

	"github.com/courtpulse/courtpulse/internal/adapters/feed"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseClock(t *testing.T) {
	Convey("Given display clock strings", t, func() {
		Convey("Then M:SS parses to fractional minutes", func() {
			So(feed.ParseClock("7:30"), ShouldEqual, 7.5)
			So(feed.ParseClock("0:30"), ShouldEqual, 0.5)
			So(feed.ParseClock("12:00"), ShouldEqual, 12)
		})

		Convey("Then a bare minutes value parses as-is", func() {
			So(feed.ParseClock("8"), ShouldEqual, 8)
		})

		Convey("Then malformed or empty input is zero remaining", func() {
			So(feed.ParseClock(""), ShouldEqual, 0)
			So(feed.ParseClock("end"), ShouldEqual, 0)
			So(feed.ParseClock("-2:00"), ShouldEqual, 0)
		})
	})
}

func TestParseMinutesPlayed(t *testing.T) {
	Convey("Given boxscore minutes strings", t, func() {
		So(feed.ParseMinutesPlayed("24"), ShouldEqual, 24)
		So(feed.ParseMinutesPlayed("24:30"), ShouldEqual, 24.5)
		So(feed.ParseMinutesPlayed(""), ShouldEqual, 0)
	})
}

func TestElapsedMinutes(t *testing.T) {
	Convey("Given period and clock-remaining pairs", t, func() {
		Convey("Then regulation periods accumulate twelve minutes each", func() {
			So(feed.ElapsedMinutes(1, 12), ShouldEqual, 0)
			So(feed.ElapsedMinutes(1, 5), ShouldEqual, 7)
			So(feed.ElapsedMinutes(3, 4.5), ShouldEqual, 31.5)
			So(feed.ElapsedMinutes(4, 0), ShouldEqual, 48)
		})

		Convey("Then overtime periods add five minutes each past regulation", func() {
			So(feed.ElapsedMinutes(5, 5), ShouldEqual, 48)
			So(feed.ElapsedMinutes(5, 0), ShouldEqual, 53)
			So(feed.ElapsedMinutes(6, 2.5), ShouldEqual, 55.5)
		})

		Convey("Then a game that has not tipped has no elapsed time", func() {
			So(feed.ElapsedMinutes(0, 0), ShouldEqual, 0)
		})

		Convey("Then a clock longer than the period clamps instead of going negative", func() {
			So(feed.ElapsedMinutes(1, 20), ShouldEqual, 0)
		})
	})
}
