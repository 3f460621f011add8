package engine

import (
	"testing"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCoupon(t *testing.T) {
	coupons := []domain.Coupon{
		{Code: "A", Name: "coupon A", DiscountType: domain.DiscountAmount, DiscountValue: 5000},
	}

	t.Run("Duplicated", func(t *testing.T) {
		dup := domain.Coupon{Code: "A", Name: "other", DiscountType: domain.DiscountPercentage, DiscountValue: 10}
		res := AddCoupon(coupons, dup)

		assert.False(t, res.Success)
		assert.Equal(t, domain.ErrDuplicated, res.Error)
		assert.NotEmpty(t, res.Message)
		assert.Equal(t, coupons, res.Coupons)
	})

	t.Run("Added", func(t *testing.T) {
		b := domain.Coupon{Code: "B", DiscountType: domain.DiscountPercentage, DiscountValue: 10}
		res := AddCoupon(coupons, b)

		require.True(t, res.Success)
		assert.Empty(t, res.Error)
		assert.Equal(t, []domain.Coupon{coupons[0], b}, res.Coupons)
		assert.Len(t, coupons, 1)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		list := []domain.Coupon{{Code: "X"}, {Code: "Y"}, {Code: "Z"}}
		res := AddCoupon(list, domain.Coupon{Code: "NEW"})
		require.True(t, res.Success)

		assert.Equal(t, list, RemoveCoupon(res.Coupons, "NEW"))
	})
}

func TestRemoveCoupon(t *testing.T) {
	coupons := []domain.Coupon{{Code: "A"}, {Code: "B"}, {Code: "C"}}

	assert.Equal(t, []domain.Coupon{{Code: "A"}, {Code: "C"}}, RemoveCoupon(coupons, "B"))
	assert.Equal(t, coupons, RemoveCoupon(coupons, "missing"))
	assert.Len(t, coupons, 3)
}

func TestSetProductStock(t *testing.T) {
	p := tieredProduct("p1", 100)
	p.Stock = 20

	for _, v := range []int{10000, -1} {
		out, res := SetProductStock(p, v)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.ErrInvalidStock, res.Error)
		assert.Equal(t, p, out)
	}

	out, res := SetProductStock(p, 500)
	require.True(t, res.Valid)
	assert.Equal(t, 500, out.Stock)
	assert.Equal(t, 20, p.Stock)
}

func TestSetProductPrice(t *testing.T) {
	p := tieredProduct("p1", 100)

	out, res := SetProductPrice(p, -10)
	assert.Equal(t, domain.ErrInvalidPrice, res.Error)
	assert.Equal(t, 100, out.Price)

	out, res = SetProductPrice(p, 250)
	require.True(t, res.Valid)
	assert.Equal(t, 250, out.Price)
	assert.Equal(t, 100, p.Price)
}

func TestSetProductDiscounts(t *testing.T) {
	p := tieredProduct("p1", 100, domain.Discount{Quantity: 10, Rate: 0.1})
	tiers := []domain.Discount{{Quantity: 5, Rate: 0.05}, {Quantity: 20, Rate: 0.2}}

	out := SetProductDiscounts(p, tiers)
	assert.Equal(t, tiers, out.Discounts)
	assert.Equal(t, []domain.Discount{{Quantity: 10, Rate: 0.1}}, p.Discounts)

	tiers[0].Rate = 0.5
	assert.Equal(t, 0.05, out.Discounts[0].Rate)
}

func TestAddProduct(t *testing.T) {
	products := []domain.Product{tieredProduct("p1", 100)}

	res, out := AddProduct(products, tieredProduct("p2", -1))
	assert.Equal(t, domain.ErrInvalidPrice, res.Error)
	assert.Equal(t, products, out)

	bad := tieredProduct("p2", 1)
	bad.Stock = 10000
	res, _ = AddProduct(products, bad)
	assert.Equal(t, domain.ErrInvalidStock, res.Error)

	res, out = AddProduct(products, tieredProduct("p2", 1))
	require.True(t, res.Valid)
	assert.Len(t, out, 2)
	assert.Len(t, products, 1)
}

func TestUpdateProduct(t *testing.T) {
	products := []domain.Product{tieredProduct("p1", 100), tieredProduct("p2", 200)}
	changed := tieredProduct("p2", 300)

	out := UpdateProduct(products, changed)
	assert.Equal(t, 300, out[1].Price)
	assert.Equal(t, 200, products[1].Price)
}

func TestFilterProducts(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Wireless Mouse", Description: "2.4GHz"},
		{ID: "2", Name: "Keyboard", Description: "mechanical, wireless"},
		{ID: "3", Name: "Monitor"},
	}

	assert.Len(t, FilterProducts(products, ""), 3)
	assert.Len(t, FilterProducts(products, "  WIRELESS "), 2)
	assert.Empty(t, FilterProducts(products, "tablet"))

	found, ok := FindProduct(products, "3")
	assert.True(t, ok)
	assert.Equal(t, "Monitor", found.Name)

	_, ok = FindProduct(products, "4")
	assert.False(t, ok)
}
