// Package sink persists each refresh's ranked alerts to Postgres.
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // postgres driver

	"github.com/courtpulse/courtpulse/internal/domain/types"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/metrics"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS alerts (
	id              UUID PRIMARY KEY,
	refreshed_at    TIMESTAMPTZ NOT NULL,
	game_id         TEXT NOT NULL,
	player_id       TEXT NOT NULL,
	player_name     TEXT NOT NULL,
	team            TEXT NOT NULL,
	category        TEXT NOT NULL,
	raw_value       DOUBLE PRECISION NOT NULL,
	projected_total DOUBLE PRECISION NOT NULL,
	severity        TEXT NOT NULL,
	rationale       TEXT NOT NULL,
	minute_of_game  INTEGER NOT NULL,
	projection      BOOLEAN NOT NULL,
	pace_per_36     DOUBLE PRECISION NOT NULL
)`

const insertStmt = `
INSERT INTO alerts (
	id, refreshed_at, game_id, player_id, player_name, team, category,
	raw_value, projected_total, severity, rationale, minute_of_game,
	projection, pace_per_36
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// Option applies a configuration option to the Sink.
type Option func(*Sink)

// WithLogger sets a custom logger for the sink.
func WithLogger(l logger.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// Sink writes alert batches to Postgres, one transaction per refresh.
type Sink struct {
	db     *sql.DB
	logger logger.Logger
}

// Open connects to Postgres with the given DSN and wraps it in a Sink.
func Open(dsn string, opts ...Option) (*Sink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewSink(db, opts...), nil
}

// NewSink creates a Sink over an existing database handle.
func NewSink(db *sql.DB, opts ...Option) *Sink {
	s := &Sink{
		db: db,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("sink")
	}

	return s
}

// EnsureSchema creates the alerts table when it does not exist yet.
func (s *Sink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableStmt); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// WriteBatch persists one refresh's ranked alerts in a single transaction.
// An empty batch is a no-op, not an error.
func (s *Sink) WriteBatch(ctx context.Context, refreshedAt time.Time, alerts []types.RankedAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordSinkError()
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		metrics.RecordSinkError()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range alerts {
		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			refreshedAt,
			a.GameID,
			a.PlayerID,
			a.PlayerName,
			a.Team,
			string(a.Category),
			a.RawValue,
			a.ProjectedTotal,
			a.Severity.String(),
			a.Rationale,
			a.MinuteOfGame,
			a.Projection,
			a.Pace,
		); err != nil {
			metrics.RecordSinkError()
			return fmt.Errorf("insert alert %s/%s: %w", a.PlayerID, a.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordSinkError()
		return fmt.Errorf("commit alerts: %w", err)
	}

	metrics.RecordSinkWrite(time.Since(start).Seconds())
	s.logger.Debug(ctx, "wrote alert batch",
		logger.Int("alerts", len(alerts)),
	)
	return nil
}

// Close releases the underlying database handle.
func (s *Sink) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}
