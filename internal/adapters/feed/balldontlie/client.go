// Package balldontlie implements the primary upstream feed client against
// the balldontlie REST API.
package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/courtpulse/courtpulse/internal/adapters/feed"
	"github.com/courtpulse/courtpulse/internal/domain/model"
)

const (
	defaultBaseURL = "https://api.balldontlie.io"
	defaultTimeout = 10 * time.Second
	providerName   = "balldontlie"
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

// Client fetches today's games and per-player stats and normalizes them.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

var _ feed.Provider = (*Client)(nil)

// NewClient creates a balldontlie client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
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

// gameResponse mirrors the upstream /v1/games entry.
type gameResponse struct {
	ID               int    `json:"id"`
	Status           string `json:"status"`
	Period           int    `json:"period"`
	Time             string `json:"time"`
	HomeTeamScore    int    `json:"home_team_score"`
	VisitorTeamScore int    `json:"visitor_team_score"`
	HomeTeam         struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"home_team"`
	VisitorTeam struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"visitor_team"`
}

// statResponse mirrors the upstream /v1/stats entry. Optional stat fields
// that the API omits decode to zero, which is exactly what the engine wants.
type statResponse struct {
	Min    string  `json:"min"`
	Pts    float64 `json:"pts"`
	Reb    float64 `json:"reb"`
	Ast    float64 `json:"ast"`
	Stl    float64 `json:"stl"`
	Blk    float64 `json:"blk"`
	Fg3m   float64 `json:"fg3m"`
	Player struct {
		ID        int    `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"player"`
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	Game struct {
		ID int `json:"id"`
	} `json:"game"`
}

type page[T any] struct {
	Data []T `json:"data"`
}

// FetchSnapshot retrieves today's games and their player stats.
func (c *Client) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	games, err := c.fetchGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}

	snap := &model.Snapshot{
		Source:    providerName,
		FetchedAt: c.now(),
	}

	ids := make([]string, 0, len(games))
	for _, g := range games {
		snap.Games = append(snap.Games, normalizeGame(g))
		ids = append(ids, strconv.Itoa(g.ID))
	}

	if len(ids) > 0 {
		stats, err := c.fetchStats(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("fetch stats: %w", err)
		}
		for _, s := range stats {
			snap.Players = append(snap.Players, normalizeStat(s))
		}
	}

	return snap, nil
}

func (c *Client) fetchGames(ctx context.Context) ([]gameResponse, error) {
	params := url.Values{}
	params.Add("dates[]", c.now().Format("2006-01-02"))
	params.Set("per_page", "100")

	var out page[gameResponse]
	if err := c.getJSON(ctx, "/v1/games", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) fetchStats(ctx context.Context, gameIDs []string) ([]statResponse, error) {
	params := url.Values{}
	for _, id := range gameIDs {
		params.Add("game_ids[]", id)
	}
	params.Set("per_page", "100")

	var out page[statResponse]
	if err := c.getJSON(ctx, "/v1/stats", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
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
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// normalizeGame maps the upstream status vocabulary onto the engine's. The
// API reports "Final" for finished games, an ISO timestamp for scheduled
// ones, and a period label ("1st Qtr", "Halftime", ...) while live.
func normalizeGame(g gameResponse) model.Game {
	status := model.StatusLive
	switch {
	case strings.EqualFold(strings.TrimSpace(g.Status), "Final"):
		status = model.StatusFinished
	case g.Period == 0:
		status = model.StatusScheduled
	}

	elapsed := 0.0
	switch status {
	case model.StatusFinished:
		elapsed = model.FullGameMinutes
	case model.StatusLive:
		elapsed = feed.ElapsedMinutes(g.Period, feed.ParseClock(g.Time))
	case model.StatusScheduled:
	}

	return model.Game{
		GameID:         strconv.Itoa(g.ID),
		HomeTeam:       g.HomeTeam.Abbreviation,
		AwayTeam:       g.VisitorTeam.Abbreviation,
		HomeScore:      g.HomeTeamScore,
		AwayScore:      g.VisitorTeamScore,
		Status:         status,
		Period:         g.Period,
		Clock:          g.Time,
		ElapsedMinutes: elapsed,
	}
}

func normalizeStat(s statResponse) model.PlayerBoxScore {
	return model.PlayerBoxScore{
		PlayerID:          strconv.Itoa(s.Player.ID),
		PlayerName:        strings.TrimSpace(s.Player.FirstName + " " + s.Player.LastName),
		Team:              s.Team.Abbreviation,
		GameID:            strconv.Itoa(s.Game.ID),
		MinutesPlayed:     feed.ParseMinutesPlayed(s.Min),
		Points:            s.Pts,
		Rebounds:          s.Reb,
		Assists:           s.Ast,
		Steals:            s.Stl,
		Blocks:            s.Blk,
		ThreePointersMade: s.Fg3m,
	}
}
