package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/port"
)

var (
	_ port.CatalogStore = (*MemoryCatalog)(nil)
	_ port.CartStore    = (*MemoryCarts)(nil)
	_ port.CouponStore  = (*MemoryCoupons)(nil)
)

// MemoryCatalog keeps products in insertion order. Values are copied on the
// way in and out.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewMemoryCatalog(seed ...domain.Product) *MemoryCatalog {
	c := &MemoryCatalog{}
	for _, p := range seed {
		c.products = append(c.products, p.Clone())
	}
	return c
}

func (c *MemoryCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "MemoryCatalog.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (c *MemoryCatalog) Product(ctx context.Context, id string) (domain.Product, error) {
	const op = "MemoryCatalog.Product"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: product %q: %w", op, id, port.ErrNotFound)
}

// SaveProduct replaces the product with the same ID or appends a new one.
func (c *MemoryCatalog) SaveProduct(ctx context.Context, p domain.Product) error {
	const op = "MemoryCatalog.SaveProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID == p.ID {
			c.products[i] = p.Clone()
			return nil
		}
	}
	c.products = append(c.products, p.Clone())
	return nil
}

type MemoryCarts struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewMemoryCarts() *MemoryCarts {
	return &MemoryCarts{carts: make(map[string]domain.Cart)}
}

func (s *MemoryCarts) Cart(ctx context.Context, id string) (domain.Cart, error) {
	const op = "MemoryCarts.Cart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[id]
	if !ok {
		return domain.Cart{}, fmt.Errorf("%s: cart %q: %w", op, id, port.ErrNotFound)
	}
	return cloneCart(cart), nil
}

func (s *MemoryCarts) SaveCart(ctx context.Context, cart domain.Cart) error {
	const op = "MemoryCarts.SaveCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.ID] = cloneCart(cart)
	return nil
}

func (s *MemoryCarts) CartsWithCoupon(
	ctx context.Context, code string,
) ([]domain.Cart, error) {
	const op = "MemoryCarts.CartsWithCoupon"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Cart
	for _, cart := range s.carts {
		if cart.Coupon != nil && cart.Coupon.Code == code {
			out = append(out, cloneCart(cart))
		}
	}
	return out, nil
}

type MemoryCoupons struct {
	mu      sync.RWMutex
	coupons []domain.Coupon
}

func NewMemoryCoupons(seed ...domain.Coupon) *MemoryCoupons {
	return &MemoryCoupons{coupons: append([]domain.Coupon(nil), seed...)}
}

func (s *MemoryCoupons) Coupons(ctx context.Context) ([]domain.Coupon, error) {
	const op = "MemoryCoupons.Coupons"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Coupon(nil), s.coupons...), nil
}

func (s *MemoryCoupons) AddCoupon(ctx context.Context, c domain.Coupon) error {
	const op = "MemoryCoupons.AddCoupon"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupons = append(s.coupons, c)
	return nil
}

func (s *MemoryCoupons) RemoveCoupon(ctx context.Context, code string) error {
	const op = "MemoryCoupons.RemoveCoupon"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.coupons {
		if c.Code == code {
			s.coupons = append(s.coupons[:i:i], s.coupons[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: coupon %q: %w", op, code, port.ErrNotFound)
}
