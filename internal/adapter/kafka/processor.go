package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/port"
	"github.com/niksmo/shopcart/pkg/schema"
)

var _ port.CouponTableProcessor = (*CouponTableProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(ctx context.Context) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	go p.waitForReady(ctx)

	err := p.gp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("preparing...")
	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
	log.Info("running")
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A couponEventCodec used for serde [schema.CouponEventV1]
type couponEventCodec struct {
	serde Serde
}

func newCouponEventCodec(s Serde) couponEventCodec {
	return couponEventCodec{s}
}

func (c couponEventCodec) Encode(v any) ([]byte, error) {
	const op = "couponEventCodec.Encode"
	if _, ok := v.(schema.CouponEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c couponEventCodec) Decode(data []byte) (any, error) {
	const op = "couponEventCodec.Decode"
	var s schema.CouponEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A couponValueCodec stores [schema.CouponV1] table values as bare avro.
type couponValueCodec struct {
	encodeFn func(any) ([]byte, error)
	decodeFn func([]byte, any) error
}

func newCouponValueCodec() couponValueCodec {
	s := schema.CouponV1Avro()
	return couponValueCodec{
		encodeFn: schema.AvroEncodeFn(s),
		decodeFn: schema.AvroDecodeFn(s),
	}
}

func (c couponValueCodec) Encode(v any) ([]byte, error) {
	const op = "couponValueCodec.Encode"
	cv, ok := v.(schema.CouponV1)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data, err := c.encodeFn(cv)
	if err != nil {
		return nil, opErr(err, op)
	}
	return data, nil
}

func (c couponValueCodec) Decode(data []byte) (any, error) {
	const op = "couponValueCodec.Decode"
	var cv schema.CouponV1
	if err := c.decodeFn(data, &cv); err != nil {
		return nil, opErr(err, op)
	}
	return cv, nil
}

// A CouponTableProcessor projects coupon events from the input stream into
// a compacted group table keyed by coupon code. Removed coupons are deleted
// from the table.
type CouponTableProcessor struct {
	opPrefix string
	proc     processor
}

func NewCouponTableProcessor(
	seedBrokers []string,
	inputStream string,
	group string,
	couponEventSerde Serde,
	tlsConfig *tls.Config,
) (*CouponTableProcessor, error) {
	const op = "NewCouponTableProcessor"

	applyTLS(tlsConfig)

	p := CouponTableProcessor{opPrefix: "CouponTableProcessor"}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			newCouponEventCodec(couponEventSerde),
			p.processFn,
		),
		goka.Persist(newCouponValueCodec()),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *CouponTableProcessor) Run(ctx context.Context) {
	p.proc.run(ctx)
}

func (p *CouponTableProcessor) Close() {
	p.proc.close()
}

func (p *CouponTableProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	event, ok := msg.(schema.CouponEventV1)
	log := slog.With(
		"op", makeOp(p.opPrefix, op), "code", event.Coupon.Code,
	)
	if !ok {
		log.Error("unexpected message type")
		return
	}

	apply(tableSetter{ctx}, event, log)
}

type table interface {
	SetValue(any)
	Delete()
}

// tableSetter adapts [goka.Context] to the table operations apply needs.
type tableSetter struct {
	ctx goka.Context
}

func (t tableSetter) SetValue(v any) { t.ctx.SetValue(v) }

func (t tableSetter) Delete() { t.ctx.Delete() }

func apply(t table, event schema.CouponEventV1, log *slog.Logger) {
	switch domain.CouponEventKind(event.Kind) {
	case domain.CouponAdded:
		t.SetValue(event.Coupon)
		log.Info("coupon stored", "discountType", event.Coupon.DiscountType)
	case domain.CouponRemoved:
		t.Delete()
		log.Info("coupon deleted")
	default:
		log.Warn("unknown coupon event kind", "kind", event.Kind)
	}
}
