package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

type mockRegistryClient struct {
	mock.Mock
}

func (m *mockRegistryClient) CreateSchema(
	ctx context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	args := m.Called(ctx, subject, s)
	return args.Get(0).(sr.SubjectSchema), args.Error(1)
}

func TestSchemaCreater(t *testing.T) {
	t.Run("Registers", func(t *testing.T) {
		cl := new(mockRegistryClient)
		want := sr.Schema{Schema: CouponEventSchemaTextV1, Type: sr.TypeAvro}
		cl.On("CreateSchema", mock.Anything, "coupon-events-value", want).
			Return(sr.SubjectSchema{ID: 7}, nil)

		id, err := NewSchemaCreater(cl).DetermineID(
			t.Context(), "coupon-events-value", CouponEventSchemaTextV1,
		)
		require.NoError(t, err)
		assert.Equal(t, 7, id)
	})

	t.Run("Fails", func(t *testing.T) {
		cl := new(mockRegistryClient)
		errRegistry := errors.New("incompatible")
		cl.On("CreateSchema", mock.Anything, mock.Anything, mock.Anything).
			Return(sr.SubjectSchema{}, errRegistry)

		_, err := NewSchemaCreater(cl).DetermineID(t.Context(), "s", "{}")
		assert.ErrorIs(t, err, errRegistry)
	})
}

func TestEventSchemasParse(t *testing.T) {
	require.NotPanics(t, func() { CatalogEventV1Avro() })
	require.NotPanics(t, func() { CouponEventV1Avro() })
}
