package storage

import (
	"github.com/niksmo/shopcart/internal/core/domain"
)

// Records are the JSON shapes of cart contents stored in JSONB columns.
type (
	discountRecord struct {
		Quantity int     `json:"quantity"`
		Rate     float64 `json:"rate"`
	}

	productRecord struct {
		ID          string           `json:"id"`
		Name        string           `json:"name"`
		Description string           `json:"description,omitempty"`
		Price       int              `json:"price"`
		Stock       int              `json:"stock"`
		Discounts   []discountRecord `json:"discounts"`
	}

	cartItemRecord struct {
		Product  productRecord `json:"product"`
		Quantity int           `json:"quantity"`
	}

	couponRecord struct {
		Code          string `json:"code"`
		Name          string `json:"name"`
		DiscountType  string `json:"discountType"`
		DiscountValue int    `json:"discountValue"`
	}
)

func toDiscountRecords(vs []domain.Discount) []discountRecord {
	out := make([]discountRecord, 0, len(vs))
	for _, v := range vs {
		out = append(out, discountRecord{Quantity: v.Quantity, Rate: v.Rate})
	}
	return out
}

func fromDiscountRecords(rs []discountRecord) []domain.Discount {
	if len(rs) == 0 {
		return nil
	}
	out := make([]domain.Discount, 0, len(rs))
	for _, r := range rs {
		out = append(out, domain.Discount{Quantity: r.Quantity, Rate: r.Rate})
	}
	return out
}

func toProductRecord(p domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Discounts:   toDiscountRecords(p.Discounts),
	}
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Discounts:   fromDiscountRecords(r.Discounts),
	}
}

func toItemRecords(items []domain.CartItem) []cartItemRecord {
	out := make([]cartItemRecord, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemRecord{
			Product:  toProductRecord(item.Product),
			Quantity: item.Quantity,
		})
	}
	return out
}

func fromItemRecords(rs []cartItemRecord) []domain.CartItem {
	if len(rs) == 0 {
		return nil
	}
	out := make([]domain.CartItem, 0, len(rs))
	for _, r := range rs {
		out = append(out, domain.CartItem{
			Product:  r.Product.toDomain(),
			Quantity: r.Quantity,
		})
	}
	return out
}

func toCouponRecord(c domain.Coupon) couponRecord {
	return couponRecord{
		Code:          c.Code,
		Name:          c.Name,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
	}
}

func (r couponRecord) toDomain() domain.Coupon {
	return domain.Coupon{
		Code:          r.Code,
		Name:          r.Name,
		DiscountType:  domain.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
	}
}

func cloneCart(c domain.Cart) domain.Cart {
	out := domain.Cart{ID: c.ID}
	if len(c.Items) != 0 {
		out.Items = make([]domain.CartItem, len(c.Items))
		for i, item := range c.Items {
			out.Items[i] = domain.CartItem{
				Product:  item.Product.Clone(),
				Quantity: item.Quantity,
			}
		}
	}
	if c.Coupon != nil {
		coupon := *c.Coupon
		out.Coupon = &coupon
	}
	return out
}
