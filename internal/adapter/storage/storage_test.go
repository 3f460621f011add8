package storage

import (
	"encoding/json"
	"testing"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemRecordJSON(t *testing.T) {
	items := []domain.CartItem{{
		Product: domain.Product{
			ID:        "p1",
			Name:      "Laptop",
			Price:     100000,
			Stock:     5,
			Discounts: []domain.Discount{{Quantity: 3, Rate: 0.1}},
		},
		Quantity: 2,
	}}

	b, err := json.Marshal(toItemRecords(items))
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"product": {
			"id": "p1", "name": "Laptop", "price": 100000, "stock": 5,
			"discounts": [{"quantity": 3, "rate": 0.1}]
		},
		"quantity": 2
	}]`, string(b))

	var rs []cartItemRecord
	require.NoError(t, json.Unmarshal(b, &rs))
	assert.Equal(t, items, fromItemRecords(rs))
}

func TestFromItemRecordsEmpty(t *testing.T) {
	assert.Nil(t, fromItemRecords(nil))
	assert.Nil(t, fromDiscountRecords([]discountRecord{}))
}
