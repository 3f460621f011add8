package port

import (
	"context"
	"errors"

	"github.com/niksmo/shopcart/internal/core/domain"
)

var ErrNotFound = errors.New("not found")

type (
	runner interface {
		Run(context.Context)
	}

	closer interface {
		Close()
	}
)

// Inbound ports.

type StoreFront interface {
	CreateCart(context.Context) (string, error)
	Cart(ctx context.Context, cartID string) (domain.CartView, error)
	AddToCart(ctx context.Context, cartID, productID string) (domain.CartView, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (domain.CartView, error)
	RemoveFromCart(ctx context.Context, cartID, productID string) (domain.CartView, error)
	ApplyCoupon(ctx context.Context, cartID, code string) (domain.CartView, error)
	DetachCoupon(ctx context.Context, cartID string) (domain.CartView, error)
	Products(ctx context.Context, query string) ([]domain.Product, error)
}

type Admin interface {
	AddProduct(context.Context, domain.Product) (domain.Product, error)
	SetProductPrice(ctx context.Context, productID string, price int) (domain.Product, error)
	SetProductStock(ctx context.Context, productID string, stock int) (domain.Product, error)
	SetProductDiscounts(ctx context.Context, productID string, tiers []domain.Discount) (domain.Product, error)
	Coupons(context.Context) ([]domain.Coupon, error)
	AddCoupon(context.Context, domain.Coupon) ([]domain.Coupon, error)
	RemoveCoupon(ctx context.Context, code string) ([]domain.Coupon, error)
}

// Outbound ports.

type CatalogStore interface {
	Products(context.Context) ([]domain.Product, error)
	// Product returns [ErrNotFound] for an unknown id.
	Product(ctx context.Context, id string) (domain.Product, error)
	SaveProduct(context.Context, domain.Product) error
}

type CartStore interface {
	// Cart returns [ErrNotFound] for an unknown id.
	Cart(ctx context.Context, id string) (domain.Cart, error)
	SaveCart(context.Context, domain.Cart) error
	CartsWithCoupon(ctx context.Context, code string) ([]domain.Cart, error)
}

type CouponStore interface {
	Coupons(context.Context) ([]domain.Coupon, error)
	AddCoupon(context.Context, domain.Coupon) error
	RemoveCoupon(ctx context.Context, code string) error
}

type Notifier interface {
	Publish(context.Context, domain.Notification)
}

type EventsProducer interface {
	ProduceCatalogEvent(context.Context, domain.CatalogEvent) error
	ProduceCouponEvent(context.Context, domain.CouponEvent) error
}

type CouponTableProcessor interface {
	runner
	closer
}
