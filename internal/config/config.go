// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; file and env layers override them in Load.
// - All tuned engine thresholds live here so deployments can move them
//   without a rebuild.
package config

import (
	"github.com/courtpulse/courtpulse/internal/domain/rules"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// PollIntervalSeconds sets the refresh cadence against the feeds.
	PollIntervalSeconds int `koanf:"poll_interval_seconds"`

	// FeedTimeoutSeconds bounds a single upstream request.
	FeedTimeoutSeconds int `koanf:"feed_timeout_seconds"`

	// BalldontlieAPIKey authenticates against the primary feed. The ESPN
	// fallback needs no key.
	BalldontlieAPIKey string `koanf:"balldontlie_api_key"`

	// MaxAlertsLimit caps GET /alerts?limit. The engine itself is uncapped;
	// this is purely a presentation limit.
	MaxAlertsLimit int `koanf:"max_alerts_limit"`

	// RedisAddr enables the last-good snapshot cache when non-empty.
	RedisAddr string `koanf:"redis_addr"`

	// SnapshotTTLSeconds bounds how long a cached snapshot stays usable.
	SnapshotTTLSeconds int `koanf:"snapshot_ttl_seconds"`

	// PostgresDSN enables the alert history sink when non-empty.
	PostgresDSN string `koanf:"postgres_dsn"`

	// Thresholds carries the engine's tuned rule cutoffs.
	Thresholds rules.Thresholds `koanf:"thresholds"`
}

// New creates a Config with service defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8090",
		PollIntervalSeconds: 30,
		FeedTimeoutSeconds:  10,
		MaxAlertsLimit:      15,
		SnapshotTTLSeconds:  600,
		Thresholds:          rules.DefaultThresholds(),
	}
}
