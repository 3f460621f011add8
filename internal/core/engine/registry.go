package engine

import (
	"slices"
	"strings"

	"github.com/niksmo/shopcart/internal/core/domain"
)

type CouponsResult struct {
	Coupons []domain.Coupon
	Success bool
	Error   domain.ErrorKind
	Message string
}

// AddCoupon appends coupon when its code is free. On failure the returned
// list has the same content as coupons.
func AddCoupon(coupons []domain.Coupon, coupon domain.Coupon) CouponsResult {
	res := ValidateAddCoupon(coupons, coupon)
	if !res.Valid {
		return CouponsResult{
			Coupons: slices.Clone(coupons),
			Error:   res.Error,
			Message: res.Message,
		}
	}

	out := make([]domain.Coupon, len(coupons), len(coupons)+1)
	copy(out, coupons)
	return CouponsResult{Coupons: append(out, coupon), Success: true}
}

// RemoveCoupon filters out the coupon with code. Missing codes are a no-op,
// use [ValidateRemoveCoupon] beforehand for a distinct error.
func RemoveCoupon(coupons []domain.Coupon, code string) []domain.Coupon {
	out := make([]domain.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c.Code != code {
			out = append(out, c)
		}
	}
	return out
}

func FindCoupon(coupons []domain.Coupon, code string) (domain.Coupon, bool) {
	for _, c := range coupons {
		if c.Code == code {
			return c, true
		}
	}
	return domain.Coupon{}, false
}

// SetProductPrice returns a copy of p with the new price. The original
// product is returned with an invalid result.
func SetProductPrice(p domain.Product, value int) (domain.Product, domain.Result) {
	if res := ValidateProductPrice(value); !res.Valid {
		return p, res
	}
	out := p.Clone()
	out.Price = value
	return out, domain.Ok()
}

func SetProductStock(p domain.Product, value int) (domain.Product, domain.Result) {
	if res := ValidateProductStock(value); !res.Valid {
		return p, res
	}
	out := p.Clone()
	out.Stock = value
	return out, domain.Ok()
}

func SetProductDiscounts(p domain.Product, tiers []domain.Discount) domain.Product {
	out := p.Clone()
	out.Discounts = slices.Clone(tiers)
	return out
}

// AddProduct validates p and appends it to products.
func AddProduct(
	products []domain.Product, p domain.Product,
) (domain.Result, []domain.Product) {
	if res := ValidateProduct(p); !res.Valid {
		return res, cloneProducts(products, 0)
	}
	return domain.Ok(), append(cloneProducts(products, 1), p.Clone())
}

// UpdateProduct replaces the product with the same ID.
func UpdateProduct(products []domain.Product, p domain.Product) []domain.Product {
	out := cloneProducts(products, 0)
	for i := range out {
		if out[i].ID == p.ID {
			out[i] = p.Clone()
		}
	}
	return out
}

func FindProduct(products []domain.Product, id string) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.Product{}, false
}

// FilterProducts returns products whose name or description contains query,
// ignoring case. An empty query matches everything.
func FilterProducts(products []domain.Product, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func cloneProducts(products []domain.Product, extra int) []domain.Product {
	out := make([]domain.Product, len(products), len(products)+extra)
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
