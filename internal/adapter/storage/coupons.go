package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/port"
)

var _ port.CouponStore = (*CouponsRepository)(nil)

type CouponsRepository struct {
	sqldb sqldb
}

func NewCouponsRepository(sqldb sqldb) CouponsRepository {
	return CouponsRepository{sqldb}
}

func (r CouponsRepository) Coupons(ctx context.Context) ([]domain.Coupon, error) {
	const op = "CouponsRepository.Coupons"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT code, name, discount_type, discount_value
		FROM coupons
		ORDER BY position ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var cs []domain.Coupon
	for rows.Next() {
		var rec couponRecord
		err := rows.Scan(&rec.Code, &rec.Name, &rec.DiscountType, &rec.DiscountValue)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cs = append(cs, rec.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (r CouponsRepository) AddCoupon(ctx context.Context, c domain.Coupon) error {
	const op = "CouponsRepository.AddCoupon"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO coupons (code, name, discount_type, discount_value)
		VALUES ($1, $2, $3, $4);`

	rec := toCouponRecord(c)
	_, err := r.sqldb.ExecContext(ctx, query,
		rec.Code, rec.Name, rec.DiscountType, rec.DiscountValue,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r CouponsRepository) RemoveCoupon(ctx context.Context, code string) error {
	const op = "CouponsRepository.RemoveCoupon"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(ctx, `DELETE FROM coupons WHERE code = $1;`, code)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: coupon %q: %w", op, code, port.ErrNotFound)
	}
	return nil
}
