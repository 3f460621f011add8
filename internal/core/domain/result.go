package domain

import "fmt"

type ErrorKind string

// Cart errors.
const (
	ErrCartOutOfStock      ErrorKind = "CART_OUT_OF_STOCK"
	ErrProductNotFound     ErrorKind = "PRODUCT_NOT_FOUND"
	ErrCouponNotApplicable ErrorKind = "COUPON_NOT_APPLICABLE"
)

// Coupon errors.
const (
	ErrDuplicated      ErrorKind = "DUPLICATED"
	ErrNotFound        ErrorKind = "NOT_FOUND"
	ErrInvalidDiscount ErrorKind = "INVALID_DISCOUNT"
)

// Product errors.
const (
	ErrInvalidPrice ErrorKind = "INVALID_PRICE"
	ErrInvalidStock ErrorKind = "INVALID_STOCK"
)

// A Result is the outcome of a validator. Callers branch on Valid and
// Error only, Message is advisory.
type Result struct {
	Valid   bool
	Error   ErrorKind
	Message string
}

func Ok() Result {
	return Result{Valid: true}
}

func Invalid(kind ErrorKind, format string, args ...any) Result {
	return Result{
		Valid:   false,
		Error:   kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Err returns nil for a valid result and a [*ValidationError] otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Kind: r.Error, Message: r.Message}
}

type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
