package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/courtpulse/courtpulse/internal/adapters/cache"
	"github.com/courtpulse/courtpulse/internal/adapters/feed"
	"github.com/courtpulse/courtpulse/internal/adapters/feed/balldontlie"
	"github.com/courtpulse/courtpulse/internal/adapters/feed/espn"
	"github.com/courtpulse/courtpulse/internal/adapters/http/api"
	"github.com/courtpulse/courtpulse/internal/adapters/sink"
	"github.com/courtpulse/courtpulse/internal/app"
	"github.com/courtpulse/courtpulse/internal/config"
	"github.com/courtpulse/courtpulse/internal/domain/rules"
	"github.com/courtpulse/courtpulse/internal/engine"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	// We collect our own custom system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, cleanup, err := buildService(ctx, cfg, log)
	if err != nil {
		os.Stderr.WriteString("failed to build service: " + err.Error() + "\n")
		return
	}
	defer cleanup()

	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc, cfg.MaxAlertsLimit).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildService assembles the service from configuration: feed providers,
// the optional snapshot cache and alert sink, and the rule engine with the
// configured thresholds. The returned cleanup releases external clients.
func buildService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, func(), error) {
	feedTimeout := time.Duration(cfg.FeedTimeoutSeconds) * time.Second

	providers := make([]feed.Provider, 0, 2)
	if cfg.BalldontlieAPIKey != "" {
		providers = append(providers, balldontlie.NewClient(cfg.BalldontlieAPIKey, balldontlie.WithTimeout(feedTimeout)))
	} else {
		log.Warn(ctx, "no balldontlie API key configured; provider disabled")
	}
	providers = append(providers, espn.NewClient(espn.WithTimeout(feedTimeout)))

	opts := []app.Option{
		app.WithLogger(log.Named("app")),
		app.WithProviders(providers...),
		app.WithPollInterval(time.Duration(cfg.PollIntervalSeconds) * time.Second),
		app.WithEngine(engine.New(
			engine.WithEvaluator(rules.NewEvaluator(rules.WithThresholds(cfg.Thresholds))),
			engine.WithLogger(log.Named("engine")),
		)),
	}

	cleanups := make([]func(), 0, 2)
	cleanup := func() {
		for _, f := range cleanups {
			f()
		}
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis unreachable; snapshot cache disabled", logger.String("addr", cfg.RedisAddr), logger.Error(err))
			_ = client.Close()
		} else {
			ttl := time.Duration(cfg.SnapshotTTLSeconds) * time.Second
			opts = append(opts, app.WithCache(cache.New(client, cache.WithTTL(ttl))))
			cleanups = append(cleanups, func() { _ = client.Close() })
			log.Info(ctx, "snapshot cache enabled", logger.String("addr", cfg.RedisAddr))
		}
	}

	if cfg.PostgresDSN != "" {
		alertSink, err := sink.Open(cfg.PostgresDSN, sink.WithLogger(log.Named("sink")))
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := alertSink.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, app.WithSink(alertSink))
		log.Info(ctx, "alert sink enabled")
	}

	return app.New(opts...), cleanup, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
