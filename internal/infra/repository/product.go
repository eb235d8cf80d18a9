package repository

import (
	"context"

	"pousada-pms/internal/domain/minibar"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// The row lock is what makes the check-and-decrement on stock atomic.
const lockProductSQL = `
SELECT id, name, price, stock, active
FROM products
WHERE id = $1
FOR UPDATE`

const updateStockSQL = `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*minibar.Product, error) {
	var (
		productID uuid.UUID
		name      string
		price     pgtype.Numeric
		stock     int
		active    bool
	)
	err := tx.QueryRow(ctx, lockProductSQL, id).Scan(&productID, &name, &price, &stock, &active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock product", err)
	}

	priceValue, err := pgconv.Float64FromNumeric(price)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt product price", err)
	}

	return minibar.ReconstructProduct(productID, name, priceValue, stock, active), nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, tx db.DBTX, id uuid.UUID, stock int) error {
	tag, err := tx.Exec(ctx, updateStockSQL, id, stock)
	if err != nil {
		return infra.WrapRepoErr("failed to update product stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}
