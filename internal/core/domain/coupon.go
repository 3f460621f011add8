package domain

type DiscountType string

const (
	DiscountAmount     DiscountType = "amount"
	DiscountPercentage DiscountType = "percentage"
)

const (
	MaxAmountDiscount     = 100000
	MaxPercentageDiscount = 100
)

type Coupon struct {
	Code          string
	Name          string
	DiscountType  DiscountType
	DiscountValue int
}

func (c Coupon) IsPercentage() bool {
	return c.DiscountType == DiscountPercentage
}
