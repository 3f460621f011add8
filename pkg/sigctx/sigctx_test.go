package sigctx

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifyContext(t *testing.T) {
	t.Run("ParentCanceled", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := NotifyContext(parent)
		defer stop()

		cancel()
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context is not done")
		}
	})

	t.Run("Signal", func(t *testing.T) {
		ctx, stop := NotifyContext(context.Background())
		defer stop()

		assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGQUIT))
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context is not done")
		}
	})
}
