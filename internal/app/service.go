// Package app provides the core service wiring the feed chain, the alert
// engine and the read-side store behind the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/courtpulse/courtpulse/internal/adapters/cache"
	"github.com/courtpulse/courtpulse/internal/adapters/feed"
	"github.com/courtpulse/courtpulse/internal/adapters/repository"
	"github.com/courtpulse/courtpulse/internal/adapters/sink"
	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/types"
	"github.com/courtpulse/courtpulse/internal/engine"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultPollInterval = 30 * time.Second
	pushedSource        = "push"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithProviders sets the upstream feed providers, primary first.
func WithProviders(providers ...feed.Provider) Option {
	return func(s *Service) {
		s.providers = providers
	}
}

// WithPollInterval sets the refresh cadence. Zero disables polling; the
// service then only evaluates pushed snapshots.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		s.pollInterval = d
	}
}

// WithCache enables the last-good snapshot cache.
func WithCache(c *cache.SnapshotCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithSink enables the alert history sink.
func WithSink(k *sink.Sink) Option {
	return func(s *Service) {
		s.sink = k
	}
}

// WithEngine sets a custom alert engine.
func WithEngine(e *engine.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service owns the refresh cycle: fetch, evaluate, swap, persist.
type Service struct {
	mu sync.Mutex

	// Collaborators
	store     repository.Store
	providers []feed.Provider
	chain     *feed.Chain
	cache     *cache.SnapshotCache
	sink      *sink.Sink
	engine    *engine.Engine

	// Configuration
	pollInterval time.Duration

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// refreshMu keeps a single refresh in flight; the engine itself is
	// concurrency-safe, this serializes the fetch/swap cycle.
	refreshMu sync.Mutex

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:        repository.NewMemoryStore(),
		pollInterval: defaultPollInterval,
		stopCh:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes collaborators and launches the poll loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}
	if s.engine == nil {
		s.engine = engine.New(engine.WithLogger(s.logger.Named("engine")))
	}
	if len(s.providers) > 0 {
		s.chain = feed.NewChain(s.providers, feed.WithLogger(s.logger.Named("feed")))
	}

	polling := s.chain != nil && s.pollInterval > 0
	if polling {
		s.wg.Add(1)
		go s.pollLoop(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("providers", len(s.providers)),
		logger.Any("poll_interval", s.pollInterval),
		logger.Any("polling", polling),
		logger.Any("cache", s.cache != nil),
		logger.Any("sink", s.sink != nil),
	)

	return nil
}

// Stop shuts the poll loop down and waits for it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.wg.Wait()

	if s.sink != nil {
		if err := s.sink.Close(); err != nil {
			s.logger.Warn(context.Background(), "sink close failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "service stopped")
}

// pollLoop refreshes on the configured cadence until stopped. The first
// refresh happens immediately so the dashboard is not empty for a cycle.
func (s *Service) pollLoop(ctx context.Context) {
	defer s.wg.Done()

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "initial refresh failed", logger.Error(err))
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn(ctx, "refresh failed", logger.Error(err))
			}
		}
	}
}

// Refresh fetches one snapshot (falling back to the cache when every
// provider fails) and evaluates it. Only one refresh runs at a time.
func (s *Service) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.chain == nil {
		return feed.ErrNoProviders
	}

	start := time.Now()

	snap, err := s.chain.FetchSnapshot(ctx)
	if err != nil {
		snap = s.loadCached(ctx, err)
		if snap == nil {
			metrics.RecordRefreshFailure()
			return fmt.Errorf("refresh: %w", err)
		}
	} else if s.cache != nil {
		if cerr := s.cache.Store(ctx, snap); cerr != nil {
			s.logger.Warn(ctx, "snapshot cache store failed", logger.Error(cerr))
		}
	}

	s.evaluate(ctx, snap)
	metrics.RecordRefreshCycle(time.Since(start).Seconds())
	return nil
}

// loadCached tries the last-good snapshot after a full chain failure.
func (s *Service) loadCached(ctx context.Context, fetchErr error) *model.Snapshot {
	if s.cache == nil {
		return nil
	}
	snap, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "no cached snapshot to fall back to",
			logger.Error(err),
		)
		return nil
	}
	metrics.RecordCacheServe()
	s.logger.Warn(ctx, "serving cached snapshot after feed failure",
		logger.String("source", snap.Source),
		logger.Error(fetchErr),
	)
	return snap
}

// IngestSnapshot evaluates an externally supplied snapshot through the same
// path a fetched one takes.
func (s *Service) IngestSnapshot(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("ingest: nil snapshot")
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if snap.Source == "" {
		snap.Source = pushedSource
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}

	start := time.Now()
	s.evaluate(ctx, snap)
	metrics.RecordRefreshCycle(time.Since(start).Seconds())
	return nil
}

// evaluate runs the engine over the snapshot and publishes the result.
func (s *Service) evaluate(ctx context.Context, snap *model.Snapshot) {
	alerts := s.engine.ComputeAlerts(ctx, snap.Players, snap.Games)
	s.store.Swap(ctx, snap, alerts)

	metrics.UpdateActiveAlerts(len(alerts))
	metrics.UpdateSnapshotCounts(len(snap.Games), len(snap.Players))
	metrics.UpdateSnapshotAge(time.Since(snap.FetchedAt).Seconds())

	if s.sink != nil {
		if err := s.sink.WriteBatch(ctx, snap.FetchedAt, alerts); err != nil {
			s.logger.Warn(ctx, "alert sink write failed", logger.Error(err))
		}
	}

	s.logger.Info(ctx, "snapshot evaluated",
		logger.String("source", snap.Source),
		logger.Int("games", len(snap.Games)),
		logger.Int("players", len(snap.Players)),
		logger.Int("alerts", len(alerts)),
	)
}

// Alerts returns up to limit ranked alerts. limit <= 0 means all.
func (s *Service) Alerts(ctx context.Context, limit int) []types.RankedAlert {
	return s.store.TopAlerts(ctx, limit)
}

// Games returns the games behind the current alert set.
func (s *Service) Games(ctx context.Context) []model.Game {
	return s.store.Games(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":               started,
		"poll_interval_seconds": s.pollInterval.Seconds(),
		"providers":             len(s.providers),
		"alerts":                s.store.Count(ctx),
	}

	if source, fetchedAt, ok := s.store.SnapshotInfo(ctx); ok {
		stats["snapshot_source"] = source
		stats["snapshot_age_seconds"] = time.Since(fetchedAt).Seconds()
	}

	return stats
}
