// Package espn implements the fallback upstream feed client against the
// public ESPN site API.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/courtpulse/courtpulse/internal/adapters/feed"
	"github.com/courtpulse/courtpulse/internal/domain/model"
)

const (
	defaultBaseURL = "https://site.api.espn.com"
	scoreboardPath = "/apis/site/v2/sports/basketball/nba/scoreboard"
	summaryPath    = "/apis/site/v2/sports/basketball/nba/summary"
	defaultTimeout = 10 * time.Second
	providerName   = "espn"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// Client fetches the NBA scoreboard and per-game summaries and normalizes
// them into the snapshot shape.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

var _ feed.Provider = (*Client)(nil)

// NewClient creates an ESPN client. The site API needs no key.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name identifies the provider.
func (c *Client) Name() string { return providerName }

// Upstream response shapes, trimmed to the fields used.

type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string        `json:"id"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
	Status      eventStatus  `json:"status"`
}

type competitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

type eventStatus struct {
	Period       int    `json:"period"`
	DisplayClock string `json:"displayClock"`
	Type         struct {
		State string `json:"state"`
	} `json:"type"`
}

type summaryResponse struct {
	Boxscore struct {
		Players []teamBox `json:"players"`
	} `json:"boxscore"`
}

type teamBox struct {
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	Statistics []statTable `json:"statistics"`
}

type statTable struct {
	Labels   []string `json:"labels"`
	Athletes []struct {
		Athlete struct {
			ID          string `json:"id"`
			DisplayName string `json:"displayName"`
		} `json:"athlete"`
		Stats []string `json:"stats"`
	} `json:"athletes"`
}

// FetchSnapshot retrieves the scoreboard and one summary per started game.
func (c *Client) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var sb scoreboardResponse
	if err := c.getJSON(ctx, scoreboardPath, &sb); err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	snap := &model.Snapshot{
		Source:    providerName,
		FetchedAt: c.now(),
	}

	for _, ev := range sb.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		g := normalizeEvent(ev.ID, ev.Competitions[0])
		snap.Games = append(snap.Games, g)

		if g.Status == model.StatusScheduled {
			continue
		}
		var sum summaryResponse
		if err := c.getJSON(ctx, summaryPath+"?event="+ev.ID, &sum); err != nil {
			return nil, fmt.Errorf("fetch summary %s: %w", ev.ID, err)
		}
		snap.Players = append(snap.Players, normalizeSummary(ev.ID, &sum)...)
	}

	return snap, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusFromState(state string) model.GameStatus {
	switch strings.ToLower(state) {
	case "pre":
		return model.StatusScheduled
	case "post":
		return model.StatusFinished
	default:
		return model.StatusLive
	}
}

func normalizeEvent(id string, comp competition) model.Game {
	g := model.Game{
		GameID: id,
		Status: statusFromState(comp.Status.Type.State),
		Period: comp.Status.Period,
		Clock:  comp.Status.DisplayClock,
	}

	for _, c := range comp.Competitors {
		score, _ := strconv.Atoi(c.Score)
		if c.HomeAway == "home" {
			g.HomeTeam = c.Team.Abbreviation
			g.HomeScore = score
		} else {
			g.AwayTeam = c.Team.Abbreviation
			g.AwayScore = score
		}
	}

	switch g.Status {
	case model.StatusFinished:
		g.ElapsedMinutes = model.FullGameMinutes
	case model.StatusLive:
		g.ElapsedMinutes = feed.ElapsedMinutes(g.Period, feed.ParseClock(g.Clock))
	case model.StatusScheduled:
	}

	return g
}

// normalizeSummary flattens the label-indexed boxscore table. ESPN reports
// threes as "makes-attempts" under the 3PT label; only makes matter here.
func normalizeSummary(gameID string, sum *summaryResponse) []model.PlayerBoxScore {
	var players []model.PlayerBoxScore
	for _, box := range sum.Boxscore.Players {
		for _, table := range box.Statistics {
			idx := labelIndex(table.Labels)
			for _, a := range table.Athletes {
				players = append(players, model.PlayerBoxScore{
					PlayerID:          a.Athlete.ID,
					PlayerName:        a.Athlete.DisplayName,
					Team:              box.Team.Abbreviation,
					GameID:            gameID,
					MinutesPlayed:     feed.ParseMinutesPlayed(statAt(a.Stats, idx["MIN"])),
					Points:            numberAt(a.Stats, idx["PTS"]),
					Rebounds:          numberAt(a.Stats, idx["REB"]),
					Assists:           numberAt(a.Stats, idx["AST"]),
					Steals:            numberAt(a.Stats, idx["STL"]),
					Blocks:            numberAt(a.Stats, idx["BLK"]),
					ThreePointersMade: madeAt(a.Stats, idx["3PT"]),
				})
			}
		}
	}
	return players
}

// labelIndex maps each known label to its column, missing labels to -1.
func labelIndex(labels []string) map[string]int {
	idx := map[string]int{"MIN": -1, "PTS": -1, "REB": -1, "AST": -1, "STL": -1, "BLK": -1, "3PT": -1}
	for i, l := range labels {
		key := strings.ToUpper(strings.TrimSpace(l))
		if _, known := idx[key]; known {
			idx[key] = i
		}
	}
	return idx
}

func statAt(stats []string, i int) string {
	if i < 0 || i >= len(stats) {
		return ""
	}
	return stats[i]
}

func numberAt(stats []string, i int) float64 {
	n, err := strconv.ParseFloat(statAt(stats, i), 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// madeAt extracts the makes from a "makes-attempts" cell.
func madeAt(stats []string, i int) float64 {
	cell := statAt(stats, i)
	if cell == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.SplitN(cell, "-", 2)[0], 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
