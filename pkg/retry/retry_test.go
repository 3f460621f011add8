package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/shopcart/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDo(t *testing.T) {
	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		var calls int
		cfg := retry.RetryConfig{
			MaxAttempts: 5,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
		}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errTemporary
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		cfg := retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
		}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 3, calls)
	})

	t.Run("NotRetryable", func(t *testing.T) {
		var calls int
		cfg := retry.RetryConfig{
			MaxAttempts: 5,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
			ShouldRetry: func(error) bool { return false },
		}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := retry.Do(ctx, retry.RetryConfig{}, func() error {
			t.Fatal("must not be called")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("CanceledWhileWaiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cfg := retry.RetryConfig{
			MaxAttempts: 5,
			Backoff:     retry.ConstantBackoff(time.Hour),
		}

		err := retry.Do(ctx, cfg, func() error {
			cancel()
			return errTemporary
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestDoWithResult(t *testing.T) {
	v, err := retry.DoWithResult(t.Context(), retry.RetryConfig{}, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff(10 * time.Millisecond)
	for attempt := 1; attempt <= 4; attempt++ {
		base := (1 << attempt) * 10 * time.Millisecond
		d := b(attempt)
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+base/2)
	}
}
