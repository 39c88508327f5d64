// Command test-feed pushes a synthetic snapshot to a running courtpulse
// instance and prints the ranked alerts it produces. Useful outside NBA
// game hours, when the live feeds have nothing to serve.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/types"
)

const (
	defaultURL     = "http://localhost:8090"
	requestTimeout = 10 * time.Second
)

type snapshotRequest struct {
	Games   []model.Game           `json:"games"`
	Players []model.PlayerBoxScore `json:"players"`
	Source  string                 `json:"source"`
}

func main() {
	url := flag.String("url", defaultURL, "base URL of the courtpulse service")
	games := flag.Int("games", 3, "number of synthetic games")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	snap := buildSnapshot(rng, *games)

	client := &http.Client{Timeout: requestTimeout}
	if err := pushSnapshot(client, *url, snap); err != nil {
		fmt.Fprintln(os.Stderr, "push failed:", err)
		os.Exit(1)
	}
	fmt.Printf("pushed %d games, %d players (seed %d)\n", len(snap.Games), len(snap.Players), *seed)

	alerts, err := fetchAlerts(client, *url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetch alerts failed:", err)
		os.Exit(1)
	}

	if len(alerts) == 0 {
		fmt.Println("no alerts fired")
		return
	}
	for i, a := range alerts {
		fmt.Printf("%2d. [%s] %s (%s) %s raw=%.0f projected=%.0f pace36=%.1f - %s\n",
			i+1, a.Severity, a.PlayerName, a.Team, a.Category,
			a.RawValue, a.ProjectedTotal, a.Pace, a.Rationale)
	}
}

// buildSnapshot generates n live games. Every game carries a handful of
// unremarkable players plus a few archetypes that should trip the rules.
func buildSnapshot(rng *rand.Rand, n int) snapshotRequest {
	teams := []string{"BOS", "NYK", "LAL", "GSW", "MIL", "DEN", "PHX", "MIA"}
	rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })

	var req snapshotRequest
	req.Source = "test-feed"

	for i := 0; i < n && i*2+1 < len(teams); i++ {
		home, away := teams[i*2], teams[i*2+1]
		elapsed := 8 + rng.Float64()*32

		game := model.Game{
			GameID:         uuid.New().String(),
			HomeTeam:       home,
			AwayTeam:       away,
			HomeScore:      40 + rng.Intn(60),
			AwayScore:      40 + rng.Intn(60),
			Status:         model.StatusLive,
			Period:         1 + int(elapsed/12),
			ElapsedMinutes: elapsed,
		}
		req.Games = append(req.Games, game)

		minutes := elapsed * 0.8

		// Background noise that should stay quiet.
		for j := 0; j < 6; j++ {
			req.Players = append(req.Players, model.PlayerBoxScore{
				PlayerID:      uuid.New().String(),
				PlayerName:    fmt.Sprintf("%s Role Player %d", home, j+1),
				Team:          home,
				GameID:        game.GameID,
				MinutesPlayed: minutes * (0.4 + rng.Float64()*0.5),
				Points:        float64(rng.Intn(8)),
				Rebounds:      float64(rng.Intn(4)),
				Assists:       float64(rng.Intn(3)),
			})
		}

		// Bench spark: heavy scoring in few minutes.
		req.Players = append(req.Players, model.PlayerBoxScore{
			PlayerID:      uuid.New().String(),
			PlayerName:    home + " Bench Spark",
			Team:          home,
			GameID:        game.GameID,
			MinutesPlayed: 6 + rng.Float64()*4,
			Points:        10 + float64(rng.Intn(6)),
		})

		// Elite scorer on pace for a huge night.
		req.Players = append(req.Players, model.PlayerBoxScore{
			PlayerID:      uuid.New().String(),
			PlayerName:    away + " Franchise Star",
			Team:          away,
			GameID:        game.GameID,
			MinutesPlayed: minutes,
			Points:        minutes * (0.9 + rng.Float64()*0.4),
			Rebounds:      float64(rng.Intn(8)),
			Assists:       float64(rng.Intn(6)),
		})

		// Specialist: blocks or steals spike.
		specialist := model.PlayerBoxScore{
			PlayerID:      uuid.New().String(),
			PlayerName:    away + " Rim Protector",
			Team:          away,
			GameID:        game.GameID,
			MinutesPlayed: minutes * 0.7,
		}
		if rng.Intn(2) == 0 {
			specialist.Blocks = float64(3 + rng.Intn(3))
		} else {
			specialist.Steals = float64(3 + rng.Intn(3))
		}
		req.Players = append(req.Players, specialist)
	}

	return req
}

func pushSnapshot(client *http.Client, baseURL string, snap snapshotRequest) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	resp, err := client.Post(baseURL+"/snapshot", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, raw)
	}
	return nil
}

func fetchAlerts(client *http.Client, baseURL string) ([]types.RankedAlert, error) {
	resp, err := client.Get(baseURL + "/alerts")
	if err != nil {
		return nil, fmt.Errorf("get alerts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var alerts []types.RankedAlert
	if err := json.NewDecoder(resp.Body).Decode(&alerts); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}
	return alerts, nil
}
