package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/niksmo/shopcart/internal/adapter/notify"
	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus(t *testing.T) {
	warn := domain.Notification{
		Level:   domain.LevelWarning,
		Message: "coupon removed",
		Kind:    domain.ErrCouponNotApplicable,
	}

	t.Run("FanOut", func(t *testing.T) {
		bus := notify.NewBus()
		defer bus.Close()

		a, cancelA := bus.Subscribe(1)
		defer cancelA()
		b, cancelB := bus.Subscribe(1)
		defer cancelB()

		bus.Publish(t.Context(), warn)
		assert.Equal(t, warn, <-a)
		assert.Equal(t, warn, <-b)
	})

	t.Run("SlowSubscriberDrops", func(t *testing.T) {
		bus := notify.NewBus()
		defer bus.Close()

		ch, cancel := bus.Subscribe(1)
		defer cancel()

		bus.Publish(t.Context(), warn)
		bus.Publish(t.Context(), domain.Notification{Level: domain.LevelSuccess})

		assert.Equal(t, warn, <-ch)
		assert.Empty(t, ch)
	})

	t.Run("CancelClosesChannel", func(t *testing.T) {
		bus := notify.NewBus()
		defer bus.Close()

		ch, cancel := bus.Subscribe(1)
		cancel()
		cancel()

		_, ok := <-ch
		assert.False(t, ok)
		bus.Publish(t.Context(), warn)
	})

	t.Run("CloseEndsSubscriptions", func(t *testing.T) {
		bus := notify.NewBus()
		ch, cancel := bus.Subscribe(1)
		bus.Close()
		cancel()

		_, ok := <-ch
		assert.False(t, ok)

		late, _ := bus.Subscribe(1)
		_, ok = <-late
		assert.False(t, ok)
	})

	t.Run("CanceledContextIsIgnored", func(t *testing.T) {
		bus := notify.NewBus()
		defer bus.Close()

		ch, cancel := bus.Subscribe(1)
		defer cancel()

		ctx, stop := context.WithCancel(t.Context())
		stop()
		bus.Publish(ctx, warn)
		assert.Empty(t, ch)
	})
}

func TestLogSubscriber(t *testing.T) {
	bus := notify.NewBus()
	ch, _ := bus.Subscribe(4)

	done := make(chan struct{})
	go func() {
		notify.LogSubscriber(ch)
		close(done)
	}()

	bus.Publish(t.Context(), domain.Notification{Level: domain.LevelSuccess, Message: "ok"})
	bus.Publish(t.Context(), domain.Notification{
		Level: domain.LevelError, Message: "no", Kind: domain.ErrNotFound,
	})
	bus.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "subscriber did not stop")
	}
}
