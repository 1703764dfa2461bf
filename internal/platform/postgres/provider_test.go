// Copyright (c) 2026 Folio. All rights reserved.

package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestProvider_ConcurrentAcquire verifies that concurrent cold callers trigger
exactly one underlying establishment.
*/
func TestProvider_ConcurrentAcquire(t *testing.T) {
	var establishments atomic.Int32

	provider := NewProvider("postgres://unused", discardLogger())
	provider.connect = func(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
		establishments.Add(1)
		return &pgxpool.Pool{}, nil
	}

	const callers = 16
	var wg sync.WaitGroup
	pools := make([]*pgxpool.Pool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pool, err := provider.Acquire(context.Background())
			assert.NoError(t, err)
			pools[i] = pool
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), establishments.Load())

	// Every caller shares the same cached handle.
	for i := 1; i < callers; i++ {
		assert.Same(t, pools[0], pools[i])
	}
}

/*
TestProvider_FailureLeavesCacheEmpty verifies that a failed establishment is
not cached and a later call retries.
*/
func TestProvider_FailureLeavesCacheEmpty(t *testing.T) {
	var attempts int
	connectErr := errors.New("connection refused")

	provider := NewProvider("postgres://unused", discardLogger())
	provider.connect = func(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
		attempts++
		if attempts == 1 {
			return nil, connectErr
		}
		return &pgxpool.Pool{}, nil
	}

	// First acquire fails and surfaces the error.
	_, err := provider.Acquire(context.Background())
	require.ErrorIs(t, err, connectErr)

	// Second acquire retries and succeeds.
	pool, err := provider.Acquire(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pool)
	assert.Equal(t, 2, attempts)

	// Third acquire hits the cache: no new attempt.
	_, err = provider.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
