package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt connects a client producing to topic. tlsConfig is
// optional.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string, tlsConfig *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		}
		if tlsConfig != nil {
			kopts = append(kopts, kgo.DialTLSConfig(tlsConfig))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

// applyTLS switches the global goka config to TLS. A nil config is a no-op.
func applyTLS(tlsConfig *tls.Config) {
	if tlsConfig == nil {
		return
	}
	cfg := goka.DefaultConfig()
	cfg.Net.TLS.Enable = true
	cfg.Net.TLS.Config = tlsConfig
	goka.ReplaceGlobalConfig(cfg)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func catalogEventToSchemaV1(
	evt domain.CatalogEvent, at time.Time,
) (s schema.CatalogEventV1) {
	s.Kind = string(evt.Kind)
	s.Product.ID = evt.Product.ID
	s.Product.Name = evt.Product.Name
	s.Product.Description = evt.Product.Description
	s.Product.Price = int64(evt.Product.Price)
	s.Product.Stock = evt.Product.Stock
	s.OccurredAt = at

	s.Product.Discounts = make([]schema.DiscountV1, len(evt.Product.Discounts))
	for i, d := range evt.Product.Discounts {
		s.Product.Discounts[i].Quantity = d.Quantity
		s.Product.Discounts[i].Rate = d.Rate
	}
	return
}

func couponToSchemaV1(c domain.Coupon) (s schema.CouponV1) {
	s.Code = c.Code
	s.Name = c.Name
	s.DiscountType = string(c.DiscountType)
	s.DiscountValue = int64(c.DiscountValue)
	return
}

func couponEventToSchemaV1(
	evt domain.CouponEvent, at time.Time,
) (s schema.CouponEventV1) {
	s.Kind = string(evt.Kind)
	s.Coupon = couponToSchemaV1(evt.Coupon)
	s.OccurredAt = at
	return
}
