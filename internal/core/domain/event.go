package domain

type CatalogEventKind string

const (
	ProductAdded     CatalogEventKind = "product_added"
	PriceChanged     CatalogEventKind = "price_changed"
	StockChanged     CatalogEventKind = "stock_changed"
	DiscountsChanged CatalogEventKind = "discounts_changed"
)

// A CatalogEvent carries the product state after an admin edit.
type CatalogEvent struct {
	Kind    CatalogEventKind
	Product Product
}

type CouponEventKind string

const (
	CouponAdded   CouponEventKind = "coupon_added"
	CouponRemoved CouponEventKind = "coupon_removed"
)

type CouponEvent struct {
	Kind   CouponEventKind
	Coupon Coupon
}
