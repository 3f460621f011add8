package domain

const (
	MinStock = 0
	MaxStock = 9999
)

type (
	Product struct {
		ID          string
		Name        string
		Description string
		Price       int
		Stock       int
		Discounts   []Discount
	}

	// A Discount is a quantity tier: Rate applies once a cart line reaches
	// Quantity units. Tiers of a product are not kept sorted.
	Discount struct {
		Quantity int
		Rate     float64
	}
)

// Clone returns a deep copy of the product, including discount tiers.
func (p Product) Clone() Product {
	c := p
	if p.Discounts != nil {
		c.Discounts = make([]Discount, len(p.Discounts))
		copy(c.Discounts, p.Discounts)
	}
	return c
}
