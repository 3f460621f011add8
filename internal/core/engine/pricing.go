// Package engine holds the pure pricing and validation rules of the shop.
//
// Functions never mutate their inputs and never touch storage, they are safe
// for concurrent use.
package engine

import (
	"math"

	"github.com/niksmo/shopcart/internal/core/domain"
)

const (
	BulkQuantity       = 10
	BulkBonusRate      = 0.05
	MaxBulkRate        = 0.5
	MinPercentageTotal = 10000
)

// MaxApplicableDiscount returns the largest tier rate whose quantity
// threshold is met by the item, or 0.
func MaxApplicableDiscount(item domain.CartItem) float64 {
	var rate float64
	for _, d := range item.Product.Discounts {
		if item.Quantity >= d.Quantity && d.Rate > rate {
			rate = d.Rate
		}
	}
	return rate
}

// ItemTotal returns the item price with its own tier discount applied,
// rounded to the nearest whole unit. The bulk bonus is not considered.
func ItemTotal(item domain.CartItem) int {
	return discounted(item, MaxApplicableDiscount(item))
}

// EffectiveDiscount returns the rate applied to the item within cart:
// the tier rate plus the bulk bonus when any line of cart reaches
// [BulkQuantity], capped at [MaxBulkRate]. The cap also applies to tier
// rates above it, so a bulk cart lowers a 0.6 tier to 0.5.
func EffectiveDiscount(item domain.CartItem, cart []domain.CartItem) float64 {
	rate := MaxApplicableDiscount(item)
	if hasBulkPurchase(cart) {
		rate = math.Min(rate+BulkBonusRate, MaxBulkRate)
	}
	return rate
}

// LineTotal returns the rounded item amount after its effective discount.
func LineTotal(item domain.CartItem, cart []domain.CartItem) int {
	return discounted(item, EffectiveDiscount(item, cart))
}

// CartTotals computes the cart amount before and after discounts.
//
// Every line is rounded separately before summation. A nil coupon means no
// coupon. An amount coupon never takes the total below zero.
func CartTotals(cart []domain.CartItem, coupon *domain.Coupon) domain.Totals {
	var t domain.Totals
	for _, item := range cart {
		t.BeforeDiscount += item.Product.Price * item.Quantity
		t.AfterDiscount += LineTotal(item, cart)
	}

	if coupon != nil {
		t.AfterDiscount = applyCoupon(t.AfterDiscount, *coupon)
	}
	return t
}

func applyCoupon(total int, c domain.Coupon) int {
	switch c.DiscountType {
	case domain.DiscountAmount:
		return max(0, total-c.DiscountValue)
	case domain.DiscountPercentage:
		rate := 1 - float64(c.DiscountValue)/100
		return int(math.Round(float64(total) * rate))
	default:
		return total
	}
}

func discounted(item domain.CartItem, rate float64) int {
	amount := float64(item.Product.Price*item.Quantity) * (1 - rate)
	return int(math.Round(amount))
}

func hasBulkPurchase(cart []domain.CartItem) bool {
	for _, item := range cart {
		if item.Quantity >= BulkQuantity {
			return true
		}
	}
	return false
}
