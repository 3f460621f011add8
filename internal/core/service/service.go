package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/port"
	"github.com/niksmo/shopcart/pkg/retry"
)

var _ port.StoreFront = (*Service)(nil)
var _ port.Admin = (*Service)(nil)

var produceRetry = retry.RetryConfig{
	MaxAttempts: 3,
	Backoff:     retry.ExponentialBackoff(50 * time.Millisecond),
	ShouldRetry: func(err error) bool {
		return !errors.Is(err, context.Canceled)
	},
}

type Service struct {
	catalog  port.CatalogStore
	carts    port.CartStore
	coupons  port.CouponStore
	notifier port.Notifier
	producer port.EventsProducer

	cartLocks *cartLocks
	adminMu   *sync.RWMutex
	newID     func() string
}

// New returns the shop service. A nil producer disables change events.
func New(
	catalog port.CatalogStore,
	carts port.CartStore,
	coupons port.CouponStore,
	notifier port.Notifier,
	producer port.EventsProducer,
) Service {
	if producer == nil {
		producer = nopProducer{}
	}
	return Service{
		catalog:   catalog,
		carts:     carts,
		coupons:   coupons,
		notifier:  notifier,
		producer:  producer,
		cartLocks: new(cartLocks),
		adminMu:   new(sync.RWMutex),
		newID:     uuid.NewString,
	}
}

// reject publishes an error notification for an invalid result and returns
// it as an error. It returns nil for a valid result.
func (s Service) reject(ctx context.Context, op string, res domain.Result) error {
	if res.Valid {
		return nil
	}
	s.notifier.Publish(ctx, domain.Notification{
		Level:   domain.LevelError,
		Message: res.Message,
		Kind:    res.Error,
	})
	return fmt.Errorf("%s: %w", op, res.Err())
}

func (s Service) success(ctx context.Context, format string, args ...any) {
	s.notifier.Publish(ctx, domain.Notification{
		Level:   domain.LevelSuccess,
		Message: fmt.Sprintf(format, args...),
	})
}

func (s Service) produceCatalog(ctx context.Context, evt domain.CatalogEvent) {
	const op = "Service.produceCatalog"

	err := retry.Do(ctx, produceRetry, func() error {
		return s.producer.ProduceCatalogEvent(ctx, evt)
	})
	if err != nil {
		slog.Error("failed to produce catalog event",
			"op", op, "kind", evt.Kind, "productID", evt.Product.ID, "err", err)
	}
}

func (s Service) produceCoupon(ctx context.Context, evt domain.CouponEvent) {
	const op = "Service.produceCoupon"

	err := retry.Do(ctx, produceRetry, func() error {
		return s.producer.ProduceCouponEvent(ctx, evt)
	})
	if err != nil {
		slog.Error("failed to produce coupon event",
			"op", op, "kind", evt.Kind, "code", evt.Coupon.Code, "err", err)
	}
}

type nopProducer struct{}

func (nopProducer) ProduceCatalogEvent(context.Context, domain.CatalogEvent) error {
	return nil
}

func (nopProducer) ProduceCouponEvent(context.Context, domain.CouponEvent) error {
	return nil
}

// cartLocks serialises read-modify-write cycles of a single cart.
type cartLocks [64]sync.Mutex

func (l *cartLocks) lock(cartID string) (unlock func()) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(cartID))
	m := &l[h.Sum32()%uint32(len(l))]
	m.Lock()
	return m.Unlock
}
