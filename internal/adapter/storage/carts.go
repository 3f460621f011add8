package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/port"
)

var _ port.CartStore = (*CartsRepository)(nil)

// CartsRepository stores each cart as one row with the item snapshots and
// the applied coupon in JSONB columns.
type CartsRepository struct {
	sqldb sqldb
}

func NewCartsRepository(sqldb sqldb) CartsRepository {
	return CartsRepository{sqldb}
}

func (r CartsRepository) Cart(ctx context.Context, id string) (domain.Cart, error) {
	const op = "CartsRepository.Cart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT cart_id, items, coupon FROM carts WHERE cart_id = $1;`

	cart, err := scanCart(r.sqldb.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, fmt.Errorf("%s: cart %q: %w", op, id, port.ErrNotFound)
		}
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart, nil
}

func (r CartsRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	const op = "CartsRepository.SaveCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	itemsB, err := json.Marshal(toItemRecords(cart.Items))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var coupon any
	if cart.Coupon != nil {
		couponB, err := json.Marshal(toCouponRecord(*cart.Coupon))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		coupon = string(couponB)
	}

	query := `
		INSERT INTO carts (cart_id, items, coupon, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (cart_id) DO UPDATE SET
			items = EXCLUDED.items,
			coupon = EXCLUDED.coupon,
			updated_at = EXCLUDED.updated_at;`

	return inTx(ctx, r.sqldb, op, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, cart.ID, string(itemsB), coupon)
		return err
	})
}

func (r CartsRepository) CartsWithCoupon(
	ctx context.Context, code string,
) ([]domain.Cart, error) {
	const op = "CartsRepository.CartsWithCoupon"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT cart_id, items, coupon
		FROM carts
		WHERE coupon ->> 'code' = $1;`

	rows, err := r.sqldb.QueryContext(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var carts []domain.Cart
	for rows.Next() {
		cart, err := scanCart(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return carts, nil
}

func scanCart(s scanner) (domain.Cart, error) {
	var (
		cart    domain.Cart
		itemsB  []byte
		couponB []byte
	)
	if err := s.Scan(&cart.ID, &itemsB, &couponB); err != nil {
		return domain.Cart{}, err
	}

	var items []cartItemRecord
	if err := json.Unmarshal(itemsB, &items); err != nil {
		return domain.Cart{}, err
	}
	cart.Items = fromItemRecords(items)

	if couponB != nil {
		var rec couponRecord
		if err := json.Unmarshal(couponB, &rec); err != nil {
			return domain.Cart{}, err
		}
		coupon := rec.toDomain()
		cart.Coupon = &coupon
	}
	return cart, nil
}
