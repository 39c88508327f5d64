package balldontlie_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courtpulse/courtpulse/internal/adapters/feed/balldontlie"
	"github.com/courtpulse/courtpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const gamesBody = `{"data":[
	{"id":101,"status":"3rd Qtr","period":3,"time":"7:30",
	 "home_team_score":68,"visitor_team_score":61,
	 "home_team":{"abbreviation":"BOS"},"visitor_team":{"abbreviation":"NYK"}},
	{"id":102,"status":"Final","period":4,"time":"",
	 "home_team_score":110,"visitor_team_score":99,
	 "home_team":{"abbreviation":"LAL"},"visitor_team":{"abbreviation":"DEN"}},
	{"id":103,"status":"2024-03-01T00:30:00Z","period":0,"time":"",
	 "home_team_score":0,"visitor_team_score":0,
	 "home_team":{"abbreviation":"MIA"},"visitor_team":{"abbreviation":"CHI"}}
]}`

const statsBody = `{"data":[
	{"min":"28:30","pts":31,"reb":5,"ast":4,"stl":1,"blk":0,"fg3m":4,
	 "player":{"id":7,"first_name":"Test","last_name":"Scorer"},
	 "team":{"abbreviation":"BOS"},"game":{"id":101}},
	{"min":"12","pts":6,"reb":2,"ast":1,
	 "player":{"id":8,"first_name":"Role","last_name":"Player"},
	 "team":{"abbreviation":"NYK"},"game":{"id":101}}
]}`

func TestFetchSnapshot(t *testing.T) {
	Convey("Given an upstream serving games and stats", t, func() {
		var authHeader string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/v1/games":
				_, _ = w.Write([]byte(gamesBody))
			case "/v1/stats":
				_, _ = w.Write([]byte(statsBody))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		c := balldontlie.NewClient("test-key", balldontlie.WithBaseURL(srv.URL))

		Convey("When fetching a snapshot", func() {
			snap, err := c.FetchSnapshot(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the API key travels in the Authorization header", func() {
				So(authHeader, ShouldEqual, "test-key")
			})

			Convey("Then games normalize with derived status and elapsed minutes", func() {
				So(len(snap.Games), ShouldEqual, 3)

				byID := map[string]model.Game{}
				for _, g := range snap.Games {
					byID[g.GameID] = g
				}

				live := byID["101"]
				So(live.Status, ShouldEqual, model.StatusLive)
				// Q3 with 7:30 left: 24 + 4.5 elapsed
				So(live.ElapsedMinutes, ShouldEqual, 28.5)
				So(live.HomeTeam, ShouldEqual, "BOS")
				So(live.HomeScore, ShouldEqual, 68)

				final := byID["102"]
				So(final.Status, ShouldEqual, model.StatusFinished)
				So(final.ElapsedMinutes, ShouldEqual, 48)

				scheduled := byID["103"]
				So(scheduled.Status, ShouldEqual, model.StatusScheduled)
				So(scheduled.ElapsedMinutes, ShouldEqual, 0)
			})

			Convey("Then player stats normalize, with absent fields as zero", func() {
				So(len(snap.Players), ShouldEqual, 2)

				scorer := snap.Players[0]
				So(scorer.PlayerID, ShouldEqual, "7")
				So(scorer.PlayerName, ShouldEqual, "Test Scorer")
				So(scorer.GameID, ShouldEqual, "101")
				So(scorer.MinutesPlayed, ShouldEqual, 28.5)
				So(scorer.Points, ShouldEqual, 31)
				So(scorer.ThreePointersMade, ShouldEqual, 4)

				role := snap.Players[1]
				So(role.MinutesPlayed, ShouldEqual, 12)
				So(role.Steals, ShouldEqual, 0)
				So(role.Blocks, ShouldEqual, 0)
			})

			Convey("Then the snapshot is attributed to the provider", func() {
				So(snap.Source, ShouldEqual, "balldontlie")
				So(snap.FetchedAt.IsZero(), ShouldBeFalse)
			})
		})
	})

	Convey("Given an upstream returning an error status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := balldontlie.NewClient("test-key", balldontlie.WithBaseURL(srv.URL))

		Convey("Then FetchSnapshot surfaces the failure", func() {
			_, err := c.FetchSnapshot(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
