package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventsProducer = (*EventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
	encoder  Encoder
}

func newProducer(opPrefix string, opts ...ProducerOpt) (producer, error) {
	const op = "newProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, opPrefix, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return producer{}, opErr(err, opPrefix, op)
		}
	}

	return producer{
		opPrefix: opPrefix,
		cl:       options.cl,
		encoder:  options.encoder,
	}, nil
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

// produce encodes v and sends it synchronously under key.
func (p producer) produce(ctx context.Context, key string, v any) error {
	const op = "produce"

	b, err := p.encoder.Encode(v)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{Key: []byte(key), Value: b}
	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CatalogEventsProducer publishes product changes keyed by product ID.
type CatalogEventsProducer struct {
	producer producer
	now      func() time.Time
}

func NewCatalogEventsProducer(opts ...ProducerOpt) (CatalogEventsProducer, error) {
	p, err := newProducer("CatalogEventsProducer", opts...)
	if err != nil {
		return CatalogEventsProducer{}, err
	}
	return CatalogEventsProducer{producer: p, now: time.Now}, nil
}

func (p CatalogEventsProducer) Close() {
	p.producer.close()
}

func (p CatalogEventsProducer) ProduceCatalogEvent(
	ctx context.Context, evt domain.CatalogEvent,
) error {
	const op = "ProduceCatalogEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.producer.opPrefix, op)
	}

	s := catalogEventToSchemaV1(evt, p.now())
	if err := p.producer.produce(ctx, s.Product.ID, s); err != nil {
		return opErr(err, p.producer.opPrefix, op)
	}
	return nil
}

// A CouponEventsProducer publishes coupon changes keyed by coupon code, so
// the coupon table keeps one value per code.
type CouponEventsProducer struct {
	producer producer
	now      func() time.Time
}

func NewCouponEventsProducer(opts ...ProducerOpt) (CouponEventsProducer, error) {
	p, err := newProducer("CouponEventsProducer", opts...)
	if err != nil {
		return CouponEventsProducer{}, err
	}
	return CouponEventsProducer{producer: p, now: time.Now}, nil
}

func (p CouponEventsProducer) Close() {
	p.producer.close()
}

func (p CouponEventsProducer) ProduceCouponEvent(
	ctx context.Context, evt domain.CouponEvent,
) error {
	const op = "ProduceCouponEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.producer.opPrefix, op)
	}

	s := couponEventToSchemaV1(evt, p.now())
	if err := p.producer.produce(ctx, s.Coupon.Code, s); err != nil {
		return opErr(err, p.producer.opPrefix, op)
	}
	return nil
}

// EventsProducer joins both producers behind [port.EventsProducer].
type EventsProducer struct {
	CatalogEventsProducer
	CouponEventsProducer
}

func NewEventsProducer(
	catalog CatalogEventsProducer, coupons CouponEventsProducer,
) EventsProducer {
	return EventsProducer{catalog, coupons}
}

func (p EventsProducer) Close() {
	p.CatalogEventsProducer.Close()
	p.CouponEventsProducer.Close()
}
