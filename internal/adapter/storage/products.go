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

var _ port.CatalogStore = (*ProductsRepository)(nil)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductsRepository.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT product_id, name, description, price, stock, discounts
		FROM products
		ORDER BY position ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) Product(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.Product"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT product_id, name, description, price, stock, discounts
		FROM products
		WHERE product_id = $1;`

	p, err := scanProduct(r.sqldb.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: product %q: %w", op, id, port.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) SaveProduct(
	ctx context.Context, p domain.Product,
) error {
	const op = "ProductsRepository.SaveProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	discountsB, err := json.Marshal(toDiscountRecords(p.Discounts))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO products (
			product_id, name, description, price, stock, discounts
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			discounts = EXCLUDED.discounts;`

	_, err = r.sqldb.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Stock, string(discountsB),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var (
		p          domain.Product
		discountsB []byte
	)
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &discountsB)
	if err != nil {
		return domain.Product{}, err
	}

	var rs []discountRecord
	if err := json.Unmarshal(discountsB, &rs); err != nil {
		return domain.Product{}, err
	}
	p.Discounts = fromDiscountRecords(rs)
	return p, nil
}
