package domain

type CartItem struct {
	Product  Product
	Quantity int
}

// A Cart is the persisted shape of a shopping cart with the coupon
// currently applied to it.
type Cart struct {
	ID     string
	Items  []CartItem
	Coupon *Coupon
}

type Totals struct {
	BeforeDiscount int
	AfterDiscount  int
}

func (t Totals) Discount() int {
	return t.BeforeDiscount - t.AfterDiscount
}

type (
	CartView struct {
		ID     string
		Lines  []CartLine
		Coupon *Coupon
		Totals Totals
	}

	CartLine struct {
		Item           CartItem
		DiscountRate   float64
		Total          int
		RemainingStock int
	}
)
