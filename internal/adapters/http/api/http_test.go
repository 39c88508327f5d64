package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/types"
)

type stubDeps struct {
	alerts    []types.RankedAlert
	games     []model.Game
	ingested  *model.Snapshot
	ingestErr error
	lastLimit int
}

func (s *stubDeps) Alerts(_ context.Context, limit int) []types.RankedAlert {
	s.lastLimit = limit
	if limit > 0 && limit < len(s.alerts) {
		return s.alerts[:limit]
	}
	return s.alerts
}

func (s *stubDeps) Games(_ context.Context) []model.Game { return s.games }

func (s *stubDeps) IngestSnapshot(_ context.Context, snap *model.Snapshot) error {
	if s.ingestErr != nil {
		return s.ingestErr
	}
	s.ingested = snap
	return nil
}

func (s *stubDeps) GetStats() map[string]any {
	return map[string]any{"started": true, "alerts": len(s.alerts)}
}

func sampleAlerts() []types.RankedAlert {
	return []types.RankedAlert{
		{
			Alert: types.Alert{
				PlayerID:   "p1",
				PlayerName: "Elite Scorer",
				Category:   types.CategoryPoints,
				RawValue:   31,
				Severity:   types.SeverityExtreme,
			},
			Pace: 42.1,
		},
		{
			Alert: types.Alert{
				PlayerID:   "p2",
				PlayerName: "Shot Blocker",
				Category:   types.CategoryBlocks,
				RawValue:   3,
				Severity:   types.SeverityHigh,
			},
			Pace: 5.2,
		},
	}
}

func newTestMux(deps Dependencies, maxLimit int) *http.ServeMux {
	mux := http.NewServeMux()
	NewServer(deps, maxLimit).Register(mux)
	return mux
}

func TestAlertsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &stubDeps{alerts: sampleAlerts()}
		mux := newTestMux(deps, 15)

		Convey("When GET /alerts has no limit", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts", nil))

			Convey("Then the configured maximum applies", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 15)

				var got []types.RankedAlert
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[0].PlayerID, ShouldEqual, "p1")
			})
		})

		Convey("When GET /alerts?limit=1", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts?limit=1", nil))

			Convey("Then only the top alert is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got []types.RankedAlert
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 1)
			})
		})

		Convey("When the limit exceeds the maximum", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts?limit=9999", nil))

			Convey("Then it is clamped, not rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 15)
			})
		})

		Convey("When the limit is malformed", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts?limit=abc", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When POSTing to /alerts", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/alerts", nil))

			Convey("Then the method is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When severity serializes", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts", nil))

			Convey("Then it appears as its tier name", func() {
				So(rec.Body.String(), ShouldContainSubstring, `"EXTREME"`)
				So(rec.Body.String(), ShouldContainSubstring, `"pace_per_36"`)
			})
		})
	})
}

func TestGamesEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &stubDeps{games: []model.Game{
			{GameID: "g1", HomeTeam: "BOS", AwayTeam: "NYK", Status: model.StatusLive},
		}}
		mux := newTestMux(deps, 15)

		Convey("When GET /games", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games", nil))

			Convey("Then the tracked games are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got []model.Game
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].GameID, ShouldEqual, "g1")
			})
		})

		Convey("When no games are tracked", func() {
			empty := &stubDeps{}
			rec := httptest.NewRecorder()
			newTestMux(empty, 15).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games", nil))

			Convey("Then an empty array is served, not null", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "[]")
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &stubDeps{alerts: sampleAlerts()}
		mux := newTestMux(deps, 15)

		Convey("When GET /stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then service statistics are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["started"], ShouldEqual, true)
				So(got["alerts"], ShouldEqual, float64(2))
			})
		})
	})
}

func TestSnapshotEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &stubDeps{alerts: sampleAlerts()}
		mux := newTestMux(deps, 15)

		validBody := func() []byte {
			b, _ := json.Marshal(snapshotRequest{
				Games: []model.Game{
					{GameID: "g1", HomeTeam: "BOS", AwayTeam: "NYK", Status: model.StatusLive},
				},
				Players: []model.PlayerBoxScore{
					{PlayerID: "p1", PlayerName: "Elite Scorer", GameID: "g1", MinutesPlayed: 20, Points: 31},
				},
				Source: "synthetic",
			})
			return b
		}

		Convey("When POST /snapshot with a valid body", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/snapshot", bytes.NewReader(validBody()))
			mux.ServeHTTP(rec, req)

			Convey("Then the snapshot is ingested and acknowledged", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(deps.ingested, ShouldNotBeNil)
				So(deps.ingested.Source, ShouldEqual, "synthetic")
				So(deps.ingested.FetchedAt.IsZero(), ShouldBeFalse)

				var ack ackResponse
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "accepted")
				So(ack.Alerts, ShouldEqual, 2)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/snapshot", bytes.NewReader([]byte("{nope")))
			mux.ServeHTTP(rec, req)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a game has an invalid status", func() {
			b, _ := json.Marshal(snapshotRequest{
				Games: []model.Game{{GameID: "g1", Status: "HALFTIME"}},
			})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshot", bytes.NewReader(b)))

			Convey("Then validation fails", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "invalid status")
			})
		})

		Convey("When a player lacks a game id", func() {
			b, _ := json.Marshal(snapshotRequest{
				Games:   []model.Game{{GameID: "g1", Status: model.StatusLive}},
				Players: []model.PlayerBoxScore{{PlayerID: "p1"}},
			})
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshot", bytes.NewReader(b)))

			Convey("Then validation fails", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When GET is used on /snapshot", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))

			Convey("Then the method is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(&stubDeps{}, 15)

		Convey("When GET /healthz", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then Prometheus metrics are served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "courtpulse_")
			})
		})
	})
}
