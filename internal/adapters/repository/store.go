// Package repository holds the latest computed alert state for read access.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/internal/domain/types"
)

// Store provides read access to the most recent refresh result. The whole
// state is swapped atomically per refresh; readers never see a half-updated
// cycle.
type Store interface {
	// Swap replaces the current state with a fresh refresh result.
	Swap(ctx context.Context, snapshot *model.Snapshot, alerts []types.RankedAlert)

	// TopAlerts returns up to n alerts in ranked order. n <= 0 means all.
	TopAlerts(ctx context.Context, n int) []types.RankedAlert

	// Games returns the games of the snapshot behind the current alerts.
	Games(ctx context.Context) []model.Game

	// SnapshotInfo reports the source and fetch time of the current state,
	// or ok=false when nothing has been stored yet.
	SnapshotInfo(ctx context.Context) (source string, fetchedAt time.Time, ok bool)

	// Count returns the number of alerts currently held.
	Count(ctx context.Context) int
}

// memoryStore implements Store with a mutex-guarded swap.
type memoryStore struct {
	mu       sync.RWMutex
	snapshot *model.Snapshot
	alerts   []types.RankedAlert
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Swap(_ context.Context, snapshot *model.Snapshot, alerts []types.RankedAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.alerts = alerts
}

func (s *memoryStore) TopAlerts(_ context.Context, n int) []types.RankedAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.alerts) {
		n = len(s.alerts)
	}
	out := make([]types.RankedAlert, n)
	copy(out, s.alerts[:n])
	return out
}

func (s *memoryStore) Games(_ context.Context) []model.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil
	}
	out := make([]model.Game, len(s.snapshot.Games))
	copy(out, s.snapshot.Games)
	return out
}

func (s *memoryStore) SnapshotInfo(_ context.Context) (string, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return "", time.Time{}, false
	}
	return s.snapshot.Source, s.snapshot.FetchedAt, true
}

func (s *memoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}
