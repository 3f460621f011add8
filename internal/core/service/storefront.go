package service

import (
	"context"
	"fmt"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/engine"
)

func (s Service) CreateCart(ctx context.Context) (string, error) {
	const op = "Service.CreateCart"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	cart := domain.Cart{ID: s.newID()}
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return cart.ID, nil
}

func (s Service) Cart(ctx context.Context, cartID string) (domain.CartView, error) {
	const op = "Service.Cart"

	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.Cart(ctx, cartID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	view, err := s.view(ctx, cart)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

// AddToCart puts one unit of the catalog product into the cart, merging with
// an existing line.
func (s Service) AddToCart(
	ctx context.Context, cartID, productID string,
) (domain.CartView, error) {
	const op = "Service.AddToCart"

	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.cartLocks.lock(cartID)
	defer unlock()

	cart, err := s.carts.Cart(ctx, cartID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	res, items := engine.AddOrIncrement(cart.Items, product)
	if err := s.reject(ctx, op, res); err != nil {
		return domain.CartView{}, err
	}
	cart.Items = items

	view, err := s.commit(ctx, cart)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	s.success(ctx, "%q added to cart", product.Name)
	return view, nil
}

// UpdateQuantity sets the quantity of a cart line. A non-positive quantity
// removes the line.
func (s Service) UpdateQuantity(
	ctx context.Context, cartID, productID string, quantity int,
) (domain.CartView, error) {
	const op = "Service.UpdateQuantity"

	if quantity <= 0 {
		view, err := s.RemoveFromCart(ctx, cartID, productID)
		if err != nil {
			return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
		}
		return view, nil
	}

	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.cartLocks.lock(cartID)
	defer unlock()

	cart, err := s.carts.Cart(ctx, cartID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	res := engine.ValidateUpdateQuantity(cart.Items, productID, quantity)
	if err := s.reject(ctx, op, res); err != nil {
		return domain.CartView{}, err
	}
	cart.Items = engine.UpdateQuantity(cart.Items, productID, quantity)

	view, err := s.commit(ctx, cart)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (s Service) RemoveFromCart(
	ctx context.Context, cartID, productID string,
) (domain.CartView, error) {
	const op = "Service.RemoveFromCart"

	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.cartLocks.lock(cartID)
	defer unlock()

	cart, err := s.carts.Cart(ctx, cartID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	res := engine.ValidateRemoveFromCart(cart.Items, productID)
	if err := s.reject(ctx, op, res); err != nil {
		return domain.CartView{}, err
	}
	cart.Items = engine.RemoveItem(cart.Items, productID)

	view, err := s.commit(ctx, cart)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	s.success(ctx, "product removed from cart")
	return view, nil
}

func (s Service) ApplyCoupon(
	ctx context.Context, cartID, code string,
) (domain.CartView, error) {
	const op = "Service.ApplyCoupon"

	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	// Held until the cart is saved so RemoveCoupon cannot detach the coupon
	// in between. Lock order is adminMu, then the cart.
	s.adminMu.RLock()
	defer s.adminMu.RUnlock()

	unlock := s.cartLocks.lock(cartID)
	defer unlock()

	cart, err := s.carts.Cart(ctx, cartID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	coupons, err := s.coupons.Coupons(ctx)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	coupon, ok := engine.FindCoupon(coupons, code)
	if !ok {
		res := domain.Invalid(domain.ErrNotFound, "coupon code %q does not exist", code)
		return domain.CartView{}, s.reject(ctx, op, res)
	}

	res := engine.ValidateApplyCoupon(cart.Items, coupon)
	if err := s.reject(ctx, op, res); err != nil {
		return domain.CartView{}, err
	}
	cart.Coupon = &coupon

	view, err := s.commit(ctx, cart)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	s.success(ctx, "coupon %q applied", coupon.Name)
	return view, nil
}

func (s Service) DetachCoupon(
	ctx context.Context, cartID string,
) (domain.CartView, error) {
	const op = "Service.DetachCoupon"

	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.cartLocks.lock(cartID)
	defer unlock()

	cart, err := s.carts.Cart(ctx, cartID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	cart.Coupon = nil

	view, err := s.commit(ctx, cart)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (s Service) Products(
	ctx context.Context, query string,
) ([]domain.Product, error) {
	const op = "Service.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return engine.FilterProducts(products, query), nil
}

// commit drops a coupon the changed cart no longer qualifies for, saves the
// cart and returns its view.
func (s Service) commit(
	ctx context.Context, cart domain.Cart,
) (domain.CartView, error) {
	if cart.Coupon != nil {
		res := engine.ValidateApplyCoupon(cart.Items, *cart.Coupon)
		if !res.Valid {
			s.notifier.Publish(ctx, domain.Notification{
				Level:   domain.LevelWarning,
				Message: fmt.Sprintf("coupon %q removed: %s", cart.Coupon.Name, res.Message),
				Kind:    res.Error,
			})
			cart.Coupon = nil
		}
	}

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return domain.CartView{}, err
	}
	return s.view(ctx, cart)
}

func (s Service) view(
	ctx context.Context, cart domain.Cart,
) (domain.CartView, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return domain.CartView{}, err
	}

	lines := make([]domain.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		p, ok := engine.FindProduct(products, item.Product.ID)
		if !ok {
			p = item.Product
		}
		lines = append(lines, domain.CartLine{
			Item:           item,
			DiscountRate:   engine.EffectiveDiscount(item, cart.Items),
			Total:          engine.LineTotal(item, cart.Items),
			RemainingStock: engine.RemainingStock(cart.Items, p),
		})
	}

	return domain.CartView{
		ID:     cart.ID,
		Lines:  lines,
		Coupon: cart.Coupon,
		Totals: engine.CartTotals(cart.Items, cart.Coupon),
	}, nil
}
