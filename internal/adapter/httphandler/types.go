package httphandler

import "github.com/niksmo/shopcart/internal/core/domain"

type (
	Discount struct {
		Quantity int     `json:"quantity" validate:"min=1"`
		Rate     float64 `json:"rate" validate:"gt=0,lt=1"`
	}

	Product struct {
		ID          string     `json:"id"`
		Name        string     `json:"name"`
		Price       int        `json:"price"`
		Stock       int        `json:"stock"`
		Discounts   []Discount `json:"discounts"`
		Description string     `json:"description,omitempty"`
	}

	CartItem struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
	}

	CartLine struct {
		CartItem
		DiscountRate   float64 `json:"discountRate"`
		Total          int     `json:"total"`
		RemainingStock int     `json:"remainingStock"`
	}

	Totals struct {
		BeforeDiscount int `json:"beforeDiscount"`
		AfterDiscount  int `json:"afterDiscount"`
		Discount       int `json:"discount"`
	}

	Cart struct {
		ID     string     `json:"id"`
		Items  []CartLine `json:"items"`
		Coupon *Coupon    `json:"coupon"`
		Totals Totals     `json:"totals"`
	}

	Coupon struct {
		Code          string `json:"code" validate:"required,max=64"`
		Name          string `json:"name" validate:"required"`
		DiscountType  string `json:"discountType" validate:"required,oneof=amount percentage"`
		DiscountValue int    `json:"discountValue"`
	}
)

// Requests.
type (
	NewProductRequest struct {
		Name        string     `json:"name" validate:"required"`
		Description string     `json:"description"`
		Price       int        `json:"price"`
		Stock       int        `json:"stock"`
		Discounts   []Discount `json:"discounts" validate:"dive"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id" validate:"required"`
	}

	QuantityRequest struct {
		Quantity *int `json:"quantity" validate:"required"`
	}

	PriceRequest struct {
		Price *int `json:"price" validate:"required"`
	}

	StockRequest struct {
		Stock *int `json:"stock" validate:"required"`
	}

	CouponCodeRequest struct {
		Code string `json:"code" validate:"required"`
	}

	discountsRequest struct {
		Discounts []Discount `validate:"dive"`
	}
)

type (
	CreatedCart struct {
		ID string `json:"id"`
	}

	ErrorResponse struct {
		Error   string `json:"error"`
		Message string `json:"message,omitempty"`
	}
)

func toDomainDiscounts(ds []Discount) []domain.Discount {
	if ds == nil {
		return nil
	}
	out := make([]domain.Discount, len(ds))
	for i, d := range ds {
		out[i] = domain.Discount{Quantity: d.Quantity, Rate: d.Rate}
	}
	return out
}

func fromDomainProduct(p domain.Product) Product {
	out := Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		Discounts:   make([]Discount, len(p.Discounts)),
	}
	for i, d := range p.Discounts {
		out.Discounts[i] = Discount{Quantity: d.Quantity, Rate: d.Rate}
	}
	return out
}

func fromDomainProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = fromDomainProduct(p)
	}
	return out
}

func (r NewProductRequest) toDomain() domain.Product {
	return domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Discounts:   toDomainDiscounts(r.Discounts),
	}
}

func (c Coupon) toDomain() domain.Coupon {
	return domain.Coupon{
		Code:          c.Code,
		Name:          c.Name,
		DiscountType:  domain.DiscountType(c.DiscountType),
		DiscountValue: c.DiscountValue,
	}
}

func fromDomainCoupon(c domain.Coupon) Coupon {
	return Coupon{
		Code:          c.Code,
		Name:          c.Name,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
	}
}

func fromDomainCoupons(cs []domain.Coupon) []Coupon {
	out := make([]Coupon, len(cs))
	for i, c := range cs {
		out[i] = fromDomainCoupon(c)
	}
	return out
}

func fromDomainCart(v domain.CartView) Cart {
	out := Cart{
		ID:    v.ID,
		Items: make([]CartLine, len(v.Lines)),
		Totals: Totals{
			BeforeDiscount: v.Totals.BeforeDiscount,
			AfterDiscount:  v.Totals.AfterDiscount,
			Discount:       v.Totals.Discount(),
		},
	}
	for i, l := range v.Lines {
		out.Items[i] = CartLine{
			CartItem: CartItem{
				Product:  fromDomainProduct(l.Item.Product),
				Quantity: l.Item.Quantity,
			},
			DiscountRate:   l.DiscountRate,
			Total:          l.Total,
			RemainingStock: l.RemainingStock,
		}
	}
	if v.Coupon != nil {
		c := fromDomainCoupon(*v.Coupon)
		out.Coupon = &c
	}
	return out
}
