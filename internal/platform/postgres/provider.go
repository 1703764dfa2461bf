// Copyright (c) 2026 Folio. All rights reserved.

package postgres

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// connectFunc establishes a pool. Swappable in tests.
type connectFunc func(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error)

// Provider lazily establishes and memoizes a single connection pool.
//
// # Purpose
//
// In the Lambda deployment the process may be frozen and reused across
// invocations, so paying connection setup once and reusing the handle is the
// difference between a warm invocation and a multi-second cold start. The
// long-running server does not need this and wires [NewPool] directly.
//
// # Concurrency
//
// Acquire is safe under concurrent first use: the check-and-establish
// sequence runs under a mutex, so concurrent cold callers trigger exactly
// one establishment attempt and then share its result.
//
// # Failure
//
// A failed establishment leaves the cache empty — no poisoned handle is
// stored — and the error surfaces to the caller, which must translate it
// into a 5xx response rather than crash.
type Provider struct {
	dsn     string
	logger  *slog.Logger
	connect connectFunc

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewProvider returns a Provider that will connect to dsn on first Acquire.
func NewProvider(dsn string, logger *slog.Logger) *Provider {
	return &Provider{
		dsn:     dsn,
		logger:  logger,
		connect: NewPool,
	}
}

// Acquire returns the cached pool, establishing it on first use.
//
// The fast path performs no network activity. Establishment honors ctx and
// the pool's own 5s connect timeout, so a cold acquire fails rather than
// hanging indefinitely.
func (provider *Provider) Acquire(ctx context.Context) (*pgxpool.Pool, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if provider.pool != nil {
		return provider.pool, nil
	}

	pool, err := provider.connect(ctx, provider.dsn, provider.logger)
	if err != nil {
		// Leave the cache empty so a later invocation can retry.
		return nil, err
	}

	provider.pool = pool
	provider.logger.Info("postgres pool established and cached")
	return provider.pool, nil
}

// Close releases the cached pool, if any. Subsequent Acquire calls reconnect.
func (provider *Provider) Close() {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if provider.pool != nil {
		provider.pool.Close()
		provider.pool = nil
	}
}
