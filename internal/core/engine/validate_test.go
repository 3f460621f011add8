package engine

import (
	"testing"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateAddToCart(t *testing.T) {
	p := tieredProduct("p1", 100)
	p.Stock = 2

	t.Run("EmptyCart", func(t *testing.T) {
		assert.Equal(t, domain.Ok(), ValidateAddToCart(nil, p))
	})

	t.Run("ZeroStock", func(t *testing.T) {
		soldOut := p
		soldOut.Stock = 0
		res := ValidateAddToCart(nil, soldOut)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.ErrCartOutOfStock, res.Error)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("ExistingBelowStock", func(t *testing.T) {
		cart := []domain.CartItem{{Product: p, Quantity: 1}}
		assert.True(t, ValidateAddToCart(cart, p).Valid)
	})

	t.Run("ExistingAtStock", func(t *testing.T) {
		cart := []domain.CartItem{{Product: p, Quantity: 2}}
		res := ValidateAddToCart(cart, p)
		assert.Equal(t, domain.ErrCartOutOfStock, res.Error)
	})
}

func TestValidateUpdateQuantity(t *testing.T) {
	p := tieredProduct("p1", 100)
	p.Stock = 3
	cart := []domain.CartItem{{Product: p, Quantity: 1}}

	assert.True(t, ValidateUpdateQuantity(cart, "p1", 3).Valid)
	assert.Equal(t, domain.ErrCartOutOfStock, ValidateUpdateQuantity(cart, "p1", 4).Error)
	assert.Equal(t, domain.ErrProductNotFound, ValidateUpdateQuantity(cart, "p2", 1).Error)
}

func TestValidateRemoveFromCart(t *testing.T) {
	cart := []domain.CartItem{{Product: tieredProduct("p1", 100), Quantity: 1}}

	assert.True(t, ValidateRemoveFromCart(cart, "p1").Valid)

	res := ValidateRemoveFromCart(cart, "p2")
	assert.False(t, res.Valid)
	assert.Equal(t, domain.ErrProductNotFound, res.Error)
}

func TestValidateApplyCoupon(t *testing.T) {
	pct := domain.Coupon{Code: "PCT10", DiscountType: domain.DiscountPercentage, DiscountValue: 10}
	amt := domain.Coupon{Code: "AMT", DiscountType: domain.DiscountAmount, DiscountValue: 5000}

	cartOf := func(price int) []domain.CartItem {
		return []domain.CartItem{{Product: tieredProduct("p1", price), Quantity: 1}}
	}

	t.Run("PercentageBelowThreshold", func(t *testing.T) {
		res := ValidateApplyCoupon(cartOf(9000), pct)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.ErrCouponNotApplicable, res.Error)
	})

	t.Run("PercentageBelowThresholdOnlyAfterCoupon", func(t *testing.T) {
		res := ValidateApplyCoupon(cartOf(11000), pct)
		assert.Equal(t, domain.ErrCouponNotApplicable, res.Error)
	})

	t.Run("PercentageAboveThreshold", func(t *testing.T) {
		assert.True(t, ValidateApplyCoupon(cartOf(12000), pct).Valid)
	})

	t.Run("AmountAlwaysApplicable", func(t *testing.T) {
		assert.True(t, ValidateApplyCoupon(cartOf(100), amt).Valid)
		assert.True(t, ValidateApplyCoupon(nil, amt).Valid)
	})
}

func TestValidateAddCoupon(t *testing.T) {
	coupons := []domain.Coupon{{Code: "A"}}

	assert.True(t, ValidateAddCoupon(coupons, domain.Coupon{Code: "B"}).Valid)
	assert.Equal(t, domain.ErrDuplicated, ValidateAddCoupon(coupons, domain.Coupon{Code: "A"}).Error)
}

func TestValidateRemoveCoupon(t *testing.T) {
	coupons := []domain.Coupon{{Code: "A"}}

	assert.True(t, ValidateRemoveCoupon(coupons, "A").Valid)
	assert.Equal(t, domain.ErrNotFound, ValidateRemoveCoupon(coupons, "B").Error)
}

func TestValidateCouponDiscountValue(t *testing.T) {
	pct := domain.Coupon{DiscountType: domain.DiscountPercentage}
	amt := domain.Coupon{DiscountType: domain.DiscountAmount}

	tests := []struct {
		name   string
		coupon domain.Coupon
		value  int
		valid  bool
	}{
		{"PercentageMax", pct, 100, true},
		{"PercentageOver", pct, 101, false},
		{"PercentageZero", pct, 0, true},
		{"AmountMax", amt, 100000, true},
		{"AmountOver", amt, 100001, false},
		{"AmountOverPercentageBound", amt, 5000, true},
		{"Negative", amt, -1, false},
		{"UnknownType", domain.Coupon{DiscountType: "bogus"}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateCouponDiscountValue(tt.coupon, tt.value)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, domain.ErrInvalidDiscount, res.Error)
			}
		})
	}
}

func TestValidateProductPrice(t *testing.T) {
	assert.True(t, ValidateProductPrice(0).Valid)
	assert.True(t, ValidateProductPrice(15000).Valid)
	assert.Equal(t, domain.ErrInvalidPrice, ValidateProductPrice(-1).Error)
}

func TestValidateProductStock(t *testing.T) {
	assert.True(t, ValidateProductStock(0).Valid)
	assert.True(t, ValidateProductStock(9999).Valid)
	assert.Equal(t, domain.ErrInvalidStock, ValidateProductStock(-1).Error)
	assert.Equal(t, domain.ErrInvalidStock, ValidateProductStock(10000).Error)
}

func TestResultErr(t *testing.T) {
	assert.NoError(t, domain.Ok().Err())

	err := ValidateProductStock(-5).Err()
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ErrInvalidStock, verr.Kind)
}
