package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/stylist/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, fastRetry(5))
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return errors.New("still broken")
		}, fastRetry(2))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 2, calls)
	})

	t.Run("permanent errors stop immediately", func(t *testing.T) {
		calls := 0
		sentinel := errors.New("bad request")
		err := WithRetry(context.Background(), func() error {
			calls++
			return Permanent(sentinel)
		}, fastRetry(5))
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error {
			return errors.New("boom")
		}, fastRetry(5))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithRetry_ThrottledWaitsMaxDelay(t *testing.T) {
	opts := service.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     40 * time.Millisecond,
		Multiplier:   2,
	}

	calls := 0
	start := time.Now()
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls == 1 {
			return ErrRateLimit
		}
		return nil
	}, opts)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestWithRetry_Defaults(t *testing.T) {
	opts := withRetryDefaults(service.RetryOptions{})
	assert.Equal(t, 3, opts.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, opts.InitialDelay)
	assert.Equal(t, 30*time.Second, opts.MaxDelay)
	assert.InDelta(t, 2.0, opts.Multiplier, 1e-9)
}
