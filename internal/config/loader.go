package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if COURTPULSE_CONFIG is set
//  3. env (prefix COURTPULSE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("COURTPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: COURTPULSE_ADDR, COURTPULSE_POLL_INTERVAL_SECONDS, ...
	// Keys map flat (underscores preserved to match koanf tags), except the
	// THRESHOLDS_ prefix, which nests under the thresholds struct:
	// COURTPULSE_THRESHOLDS_POINTS_ELITE -> thresholds.points_elite.
	envProvider := env.Provider("COURTPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "courtpulse_")
		if rest, ok := strings.CutPrefix(s, "thresholds_"); ok {
			return "thresholds." + rest
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.PollIntervalSeconds <= 0:
		return fmt.Errorf("%w: poll_interval_seconds must be positive", ErrInvalidConfig)
	case cfg.FeedTimeoutSeconds <= 0:
		return fmt.Errorf("%w: feed_timeout_seconds must be positive", ErrInvalidConfig)
	case cfg.MaxAlertsLimit <= 0:
		return fmt.Errorf("%w: max_alerts_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
