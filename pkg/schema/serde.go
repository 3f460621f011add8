package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var (
	ErrTooFewOpts    = errors.New("too few options")
	ErrEmptySubject  = errors.New("subject is empty string")
	ErrNilIdentifier = errors.New("schema identifier is nil")
)

// A Serde encodes registered event values into the registry wire format:
// magic byte, big endian schema ID, avro payload.
type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// eventSchema binds a schema text to the Go type it describes.
type eventSchema struct {
	name    string
	text    string
	parsed  func() avro.Schema
	example any
}

var (
	catalogEventV1 = eventSchema{
		name:    "CatalogEventV1",
		text:    CatalogEventSchemaTextV1,
		parsed:  CatalogEventV1Avro,
		example: CatalogEventV1{},
	}

	couponEventV1 = eventSchema{
		name:    "CouponEventV1",
		text:    CouponEventSchemaTextV1,
		parsed:  CouponEventV1Avro,
		example: CouponEventV1{},
	}
)

type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject string
	si      SchemaIdentifier
}

func SubjectOpt(subject string) Opt {
	return func(so *serdeOpts) error {
		if subject == "" {
			return ErrEmptySubject
		}
		so.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(so *serdeOpts) error {
		if si == nil {
			return ErrNilIdentifier
		}
		so.si = si
		return nil
	}
}

// NewSerdeCatalogEventV1 registers the catalog event schema under the
// subject and returns its serde. Both options are required.
func NewSerdeCatalogEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	return newEventSerde(ctx, catalogEventV1, opts)
}

// NewSerdeCouponEventV1 is [NewSerdeCatalogEventV1] for coupon events.
func NewSerdeCouponEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	return newEventSerde(ctx, couponEventV1, opts)
}

func newEventSerde(
	ctx context.Context, es eventSchema, opts []Opt,
) (Serde, error) {
	op := "NewSerde" + es.name

	if len(opts) != 2 {
		return nil, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	var so serdeOpts
	for _, o := range opts {
		if err := o(&so); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if so.subject == "" || so.si == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	id, err := so.si.DetermineID(ctx, so.subject, es.text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := es.parsed()
	serde := new(sr.Serde)
	serde.Register(
		id,
		es.example,
		sr.EncodeFn(AvroEncodeFn(s)),
		sr.DecodeFn(AvroDecodeFn(s)),
	)
	return serde, nil
}
