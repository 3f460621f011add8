package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/niksmo/shopcart/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func newCatalogSerde(t *testing.T) schema.Serde {
	t.Helper()

	schemaIdentifier := new(MockSchemaIdentifier)
	subject := "catalog-events-value"
	schemaIdentifier.On(
		"DetermineID", mock.Anything, subject, schema.CatalogEventSchemaTextV1,
	).Return(1, nil)

	serde, err := schema.NewSerdeCatalogEventV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)
	return serde
}

func TestSerdeCatalogEventV1(t *testing.T) {
	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(t.Context())
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrEmptySubject)
	})

	t.Run("DuplicatedOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCatalogEventV1(
			t.Context(),
			schema.SubjectOpt("catalog-events-value"),
			schema.SubjectOpt("catalog-events-value"),
		)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		errRegistry := errors.New("registry down")
		schemaIdentifier.On("DetermineID", mock.Anything, mock.Anything, mock.Anything).
			Return(0, errRegistry)

		_, err := schema.NewSerdeCatalogEventV1(
			t.Context(),
			schema.SubjectOpt("catalog-events-value"),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		assert.ErrorIs(t, err, errRegistry)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		serde := newCatalogSerde(t)

		in := schema.CatalogEventV1{
			Kind: "stock_changed",
			Product: schema.ProductV1{
				ID:          "p1",
				Name:        "Laptop",
				Description: "14 inch",
				Price:       100000,
				Stock:       5,
				Discounts:   []schema.DiscountV1{{Quantity: 3, Rate: 0.1}},
			},
			OccurredAt: time.UnixMilli(1_700_000_000_000).UTC(),
		}

		data, err := serde.Encode(in)
		require.NoError(t, err)
		require.Greater(t, len(data), 5)
		assert.Equal(t, byte(0), data[0])

		var out schema.CatalogEventV1
		require.NoError(t, serde.Decode(data, &out))
		assert.Equal(t, in.Kind, out.Kind)
		assert.Equal(t, in.Product, out.Product)
		assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
	})

	t.Run("UnregisteredType", func(t *testing.T) {
		serde := newCatalogSerde(t)
		_, err := serde.Encode(schema.CouponEventV1{})
		assert.ErrorIs(t, err, sr.ErrNotRegistered)
	})
}

func TestSerdeCouponEventV1(t *testing.T) {
	const schemaID = 2

	schemaIdentifier := new(MockSchemaIdentifier)
	subject := "coupon-events-value"
	schemaIdentifier.On(
		"DetermineID", mock.Anything, subject, schema.CouponEventSchemaTextV1,
	).Return(schemaID, nil).Once()

	serde, err := schema.NewSerdeCouponEventV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)
	schemaIdentifier.AssertExpectations(t)

	in := schema.CouponEventV1{
		Kind: "coupon_added",
		Coupon: schema.CouponV1{
			Code:          "SAVE10",
			Name:          "Ten percent",
			DiscountType:  "percentage",
			DiscountValue: 10,
		},
		OccurredAt: time.UnixMilli(1_700_000_000_000).UTC(),
	}

	data, err := serde.Encode(in)
	require.NoError(t, err)

	t.Run("WireHeader", func(t *testing.T) {
		var h sr.ConfluentHeader
		id, payload, err := h.DecodeID(data)
		require.NoError(t, err)
		assert.Equal(t, schemaID, id)

		var out schema.CouponEventV1
		require.NoError(t, avro.Unmarshal(schema.CouponEventV1Avro(), payload, &out))
		assert.Equal(t, in.Coupon, out.Coupon)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		var out schema.CouponEventV1
		require.NoError(t, serde.Decode(data, &out))
		assert.Equal(t, in.Kind, out.Kind)
		assert.Equal(t, in.Coupon, out.Coupon)
		assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
	})

	t.Run("ForeignSchemaID", func(t *testing.T) {
		foreign := append([]byte(nil), data...)
		foreign[4] = schemaID + 5

		var out schema.CouponEventV1
		assert.ErrorIs(t, serde.Decode(foreign, &out), sr.ErrNotRegistered)
	})
}
