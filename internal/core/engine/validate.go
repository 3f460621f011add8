package engine

import "github.com/niksmo/shopcart/internal/core/domain"

func ValidateAddToCart(
	cart []domain.CartItem, product domain.Product,
) domain.Result {
	if RemainingStock(cart, product) <= 0 {
		return domain.Invalid(domain.ErrCartOutOfStock,
			"%q is out of stock", product.Name)
	}

	item, ok := findItem(cart, product.ID)
	if ok && item.Quantity+1 > product.Stock {
		return domain.Invalid(domain.ErrCartOutOfStock,
			"only %d of %q in stock", product.Stock, product.Name)
	}
	return domain.Ok()
}

// ValidateUpdateQuantity checks a new positive quantity against the stock
// recorded in the cart snapshot of the product.
func ValidateUpdateQuantity(
	cart []domain.CartItem, productID string, quantity int,
) domain.Result {
	item, ok := findItem(cart, productID)
	if !ok {
		return domain.Invalid(domain.ErrProductNotFound,
			"product %q is not in the cart", productID)
	}

	if quantity > item.Product.Stock {
		return domain.Invalid(domain.ErrCartOutOfStock,
			"only %d of %q in stock", item.Product.Stock, item.Product.Name)
	}
	return domain.Ok()
}

func ValidateRemoveFromCart(
	cart []domain.CartItem, productID string,
) domain.Result {
	if _, ok := findItem(cart, productID); !ok {
		return domain.Invalid(domain.ErrProductNotFound,
			"product %q is not in the cart", productID)
	}
	return domain.Ok()
}

// ValidateApplyCoupon rejects a percentage coupon when the cart total with
// that coupon applied falls below [MinPercentageTotal].
func ValidateApplyCoupon(
	cart []domain.CartItem, coupon domain.Coupon,
) domain.Result {
	if !coupon.IsPercentage() {
		return domain.Ok()
	}

	totals := CartTotals(cart, &coupon)
	if totals.AfterDiscount < MinPercentageTotal {
		return domain.Invalid(domain.ErrCouponNotApplicable,
			"percentage coupons require an order of at least %d", MinPercentageTotal)
	}
	return domain.Ok()
}

func ValidateAddCoupon(
	coupons []domain.Coupon, coupon domain.Coupon,
) domain.Result {
	if _, ok := FindCoupon(coupons, coupon.Code); ok {
		return domain.Invalid(domain.ErrDuplicated,
			"coupon code %q already exists", coupon.Code)
	}
	return domain.Ok()
}

func ValidateRemoveCoupon(coupons []domain.Coupon, code string) domain.Result {
	if _, ok := FindCoupon(coupons, code); !ok {
		return domain.Invalid(domain.ErrNotFound,
			"coupon code %q does not exist", code)
	}
	return domain.Ok()
}

// ValidateCouponDiscountValue checks value against the upper bound of the
// coupon discount type. Negative values are rejected for both types.
func ValidateCouponDiscountValue(
	coupon domain.Coupon, value int,
) domain.Result {
	if value < 0 {
		return domain.Invalid(domain.ErrInvalidDiscount,
			"discount value must not be negative")
	}

	switch coupon.DiscountType {
	case domain.DiscountPercentage:
		if value > domain.MaxPercentageDiscount {
			return domain.Invalid(domain.ErrInvalidDiscount,
				"percentage discount must not exceed %d", domain.MaxPercentageDiscount)
		}
	case domain.DiscountAmount:
		if value > domain.MaxAmountDiscount {
			return domain.Invalid(domain.ErrInvalidDiscount,
				"amount discount must not exceed %d", domain.MaxAmountDiscount)
		}
	default:
		return domain.Invalid(domain.ErrInvalidDiscount,
			"unknown discount type %q", coupon.DiscountType)
	}
	return domain.Ok()
}

func ValidateProductPrice(value int) domain.Result {
	if value < 0 {
		return domain.Invalid(domain.ErrInvalidPrice,
			"price must not be negative")
	}
	return domain.Ok()
}

func ValidateProductStock(value int) domain.Result {
	if value < domain.MinStock || value > domain.MaxStock {
		return domain.Invalid(domain.ErrInvalidStock,
			"stock must be within [%d, %d]", domain.MinStock, domain.MaxStock)
	}
	return domain.Ok()
}

// ValidateProduct runs price and stock validation for a new product.
func ValidateProduct(p domain.Product) domain.Result {
	if res := ValidateProductPrice(p.Price); !res.Valid {
		return res
	}
	return ValidateProductStock(p.Stock)
}
