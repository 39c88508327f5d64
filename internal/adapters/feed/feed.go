// Package feed defines the upstream data-provider contract and the fallback
// chain that normalizes heterogeneous APIs into one snapshot shape.
package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtpulse/courtpulse/internal/domain/model"
	"github.com/courtpulse/courtpulse/pkg/logger"
	"github.com/courtpulse/courtpulse/pkg/metrics"
)

// Provider fetches one normalized snapshot from a single upstream API.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// FetchSnapshot retrieves and normalizes the current games and player
	// box scores.
	FetchSnapshot(ctx context.Context) (*model.Snapshot, error)
}

// Option applies a configuration option to the Chain.
type Option func(*Chain)

// WithLogger sets a custom logger for the chain.
func WithLogger(l logger.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// Chain tries providers in order and returns the first snapshot fetched.
// It does not retry a provider; a failed provider simply yields to the next.
type Chain struct {
	providers []Provider
	logger    logger.Logger
}

// NewChain creates a fallback chain over the given providers, primary first.
func NewChain(providers []Provider, opts ...Option) *Chain {
	c := &Chain{
		providers: providers,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("feed")
	}

	return c
}

// FetchSnapshot walks the chain until a provider succeeds.
func (c *Chain) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if len(c.providers) == 0 {
		return nil, ErrNoProviders
	}

	var lastErr error
	for i, p := range c.providers {
		snap, err := p.FetchSnapshot(ctx)
		if err != nil {
			metrics.RecordFeedRequest(p.Name(), "error")
			c.logger.Warn(ctx, "provider fetch failed",
				logger.String("provider", p.Name()),
				logger.Error(err),
			)
			lastErr = err
			continue
		}
		metrics.RecordFeedRequest(p.Name(), "ok")
		if i > 0 {
			metrics.RecordFeedFallback()
		}
		return snap, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// Sentinel error kinds for this package.
var (
	ErrNoProviders        = errors.New("no feed providers configured")
	ErrAllProvidersFailed = errors.New("all feed providers failed")
)
