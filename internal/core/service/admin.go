package service

import (
	"context"
	"fmt"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/engine"
)

// AddProduct validates and stores a new catalog product under a fresh ID.
func (s Service) AddProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Service.AddProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p = p.Clone()
	p.ID = s.newID()
	res, _ := engine.AddProduct(products, p)
	if err := s.reject(ctx, op, res); err != nil {
		return domain.Product{}, err
	}

	if err := s.catalog.SaveProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.produceCatalog(ctx, domain.CatalogEvent{Kind: domain.ProductAdded, Product: p})
	s.success(ctx, "product %q added", p.Name)
	return p, nil
}

func (s Service) SetProductPrice(
	ctx context.Context, productID string, price int,
) (domain.Product, error) {
	const op = "Service.SetProductPrice"
	return s.editProduct(ctx, op, productID, domain.PriceChanged,
		func(p domain.Product) (domain.Product, domain.Result) {
			return engine.SetProductPrice(p, price)
		},
	)
}

func (s Service) SetProductStock(
	ctx context.Context, productID string, stock int,
) (domain.Product, error) {
	const op = "Service.SetProductStock"
	return s.editProduct(ctx, op, productID, domain.StockChanged,
		func(p domain.Product) (domain.Product, domain.Result) {
			return engine.SetProductStock(p, stock)
		},
	)
}

// SetProductDiscounts replaces the discount tiers of the product. Tier
// bounds are checked by the inbound adapter.
func (s Service) SetProductDiscounts(
	ctx context.Context, productID string, tiers []domain.Discount,
) (domain.Product, error) {
	const op = "Service.SetProductDiscounts"
	return s.editProduct(ctx, op, productID, domain.DiscountsChanged,
		func(p domain.Product) (domain.Product, domain.Result) {
			return engine.SetProductDiscounts(p, tiers), domain.Ok()
		},
	)
}

func (s Service) editProduct(
	ctx context.Context,
	op, productID string,
	kind domain.CatalogEventKind,
	edit func(domain.Product) (domain.Product, domain.Result),
) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	p, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, res := edit(p)
	if err := s.reject(ctx, op, res); err != nil {
		return domain.Product{}, err
	}

	if err := s.catalog.SaveProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.produceCatalog(ctx, domain.CatalogEvent{Kind: kind, Product: p})
	s.success(ctx, "product %q updated", p.Name)
	return p, nil
}

func (s Service) Coupons(ctx context.Context) ([]domain.Coupon, error) {
	const op = "Service.Coupons"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	coupons, err := s.coupons.Coupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return coupons, nil
}

// AddCoupon checks the discount value bound and code uniqueness, then
// stores the coupon. It returns the resulting coupon list.
func (s Service) AddCoupon(
	ctx context.Context, c domain.Coupon,
) ([]domain.Coupon, error) {
	const op = "Service.AddCoupon"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	res := engine.ValidateCouponDiscountValue(c, c.DiscountValue)
	if err := s.reject(ctx, op, res); err != nil {
		return nil, err
	}

	coupons, err := s.coupons.Coupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	added := engine.AddCoupon(coupons, c)
	if !added.Success {
		res := domain.Result{Error: added.Error, Message: added.Message}
		return nil, s.reject(ctx, op, res)
	}

	if err := s.coupons.AddCoupon(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.produceCoupon(ctx, domain.CouponEvent{Kind: domain.CouponAdded, Coupon: c})
	s.success(ctx, "coupon %q added", c.Name)
	return added.Coupons, nil
}

// RemoveCoupon deletes the coupon and detaches it from every cart holding it.
func (s Service) RemoveCoupon(
	ctx context.Context, code string,
) ([]domain.Coupon, error) {
	const op = "Service.RemoveCoupon"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	coupons, err := s.coupons.Coupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := engine.ValidateRemoveCoupon(coupons, code)
	if err := s.reject(ctx, op, res); err != nil {
		return nil, err
	}
	removed, _ := engine.FindCoupon(coupons, code)

	if err := s.coupons.RemoveCoupon(ctx, code); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.detachEverywhere(ctx, code); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.produceCoupon(ctx, domain.CouponEvent{Kind: domain.CouponRemoved, Coupon: removed})
	s.success(ctx, "coupon %q removed", removed.Name)
	return engine.RemoveCoupon(coupons, code), nil
}

func (s Service) detachEverywhere(ctx context.Context, code string) error {
	carts, err := s.carts.CartsWithCoupon(ctx, code)
	if err != nil {
		return err
	}

	for _, cart := range carts {
		if err := s.detachCoupon(ctx, cart.ID, code); err != nil {
			return err
		}
	}
	return nil
}

func (s Service) detachCoupon(ctx context.Context, cartID, code string) error {
	unlock := s.cartLocks.lock(cartID)
	defer unlock()

	cart, err := s.carts.Cart(ctx, cartID)
	if err != nil {
		return err
	}

	if cart.Coupon == nil || cart.Coupon.Code != code {
		return nil
	}
	cart.Coupon = nil
	return s.carts.SaveCart(ctx, cart)
}
