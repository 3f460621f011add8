package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/port"
)

var _ port.Notifier = (*Bus)(nil)

const DefaultBufferSize = 16

// Bus fans notifications out to subscribers. A subscriber whose buffer is
// full misses the notification.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan domain.Notification
	nextID int
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan domain.Notification)}
}

func (b *Bus) Publish(ctx context.Context, n domain.Notification) {
	const op = "Bus.Publish"

	if ctx.Err() != nil {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for id, ch := range b.subs {
		select {
		case ch <- n:
		default:
			slog.Warn("subscriber is slow, notification dropped",
				"op", op, "subscriber", id, "level", n.Level)
		}
	}
}

// Subscribe registers a subscriber with the given buffer size. The channel
// is closed by cancel or [Bus.Close].
func (b *Bus) Subscribe(buffer int) (<-chan domain.Notification, func()) {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	ch := make(chan domain.Notification, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Close closes every subscription. Later publishes are discarded.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// LogSubscriber writes every notification of the subscription to slog until
// the channel is closed.
func LogSubscriber(ch <-chan domain.Notification) {
	log := slog.With("op", "notify.LogSubscriber")
	for n := range ch {
		switch n.Level {
		case domain.LevelError:
			log.Error(n.Message, "kind", n.Kind)
		case domain.LevelWarning:
			log.Warn(n.Message, "kind", n.Kind)
		default:
			log.Info(n.Message)
		}
	}
}
