package engine

import (
	"fmt"

	"github.com/niksmo/shopcart/internal/core/domain"
)

// AddItem appends a snapshot of product with quantity 1. It does not merge
// with an existing line, use [AddOrIncrement] for that.
func AddItem(cart []domain.CartItem, product domain.Product) []domain.CartItem {
	out := cloneCart(cart, 1)
	return append(out, domain.CartItem{Product: product.Clone(), Quantity: 1})
}

// UpdateQuantity sets the quantity of the line holding productID.
// Non-positive quantities must be routed to [RemoveItem] by the caller.
func UpdateQuantity(
	cart []domain.CartItem, productID string, quantity int,
) []domain.CartItem {
	if quantity <= 0 {
		panic(fmt.Errorf("engine.UpdateQuantity: non-positive quantity %d", quantity))
	}

	out := cloneCart(cart, 0)
	for i := range out {
		if out[i].Product.ID == productID {
			out[i].Quantity = quantity
		}
	}
	return out
}

func RemoveItem(cart []domain.CartItem, productID string) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.Product.ID != productID {
			out = append(out, cloneItem(item))
		}
	}
	return out
}

// RemainingStock returns how many more units of product can be put into
// cart. Negative only when stock validation was bypassed.
func RemainingStock(cart []domain.CartItem, product domain.Product) int {
	return product.Stock - quantityOf(cart, product.ID)
}

// AddOrIncrement validates the add and then either increments the existing
// line of product or appends a new one. The cart is returned unchanged on
// an invalid result.
func AddOrIncrement(
	cart []domain.CartItem, product domain.Product,
) (domain.Result, []domain.CartItem) {
	res := ValidateAddToCart(cart, product)
	if !res.Valid {
		return res, cloneCart(cart, 0)
	}

	if item, ok := findItem(cart, product.ID); ok {
		return res, UpdateQuantity(cart, product.ID, item.Quantity+1)
	}
	return res, AddItem(cart, product)
}

func findItem(cart []domain.CartItem, productID string) (domain.CartItem, bool) {
	for _, item := range cart {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return domain.CartItem{}, false
}

func quantityOf(cart []domain.CartItem, productID string) int {
	item, ok := findItem(cart, productID)
	if !ok {
		return 0
	}
	return item.Quantity
}

func cloneCart(cart []domain.CartItem, extra int) []domain.CartItem {
	out := make([]domain.CartItem, len(cart), len(cart)+extra)
	for i, item := range cart {
		out[i] = cloneItem(item)
	}
	return out
}

func cloneItem(item domain.CartItem) domain.CartItem {
	return domain.CartItem{Product: item.Product.Clone(), Quantity: item.Quantity}
}
