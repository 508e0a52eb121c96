package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductBulkRepository serves the bulk-delete path through pgx directly,
// bypassing the ORM for whole-table operations.
type ProductBulkRepository struct {
	pool *pgxpool.Pool
}

func NewProductBulkRepository(pool *pgxpool.Pool) *ProductBulkRepository {
	return &ProductBulkRepository{pool: pool}
}

func (r *ProductBulkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// DeleteAll removes every catalog row and returns the exact deleted count.
func (r *ProductBulkRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products")
	if err != nil {
		return 0, fmt.Errorf("delete all products: %w", err)
	}
	return tag.RowsAffected(), nil
}
