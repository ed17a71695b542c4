package repository

import (
	"context"

	"github.com/diyath7/small-shop-system/internal/dto"

	"gorm.io/gorm"
)

// InventoryRepository serves the aggregate read views: per-product totals
// derived from batch quantities. It never mutates anything.
type InventoryRepository interface {
	FullView(ctx context.Context) ([]dto.InventoryRow, error)
	Expiring(ctx context.Context, days int) ([]dto.ExpiringRow, error)
	StockSummary(ctx context.Context) ([]dto.StockSummaryRow, error)
	// TotalQuantity sums the remaining quantity across one product's batches.
	TotalQuantity(ctx context.Context, productID uint) (int, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

const inventoryViewSQL = `
WITH inv AS (
  SELECT
    p.id AS product_id,
    p.name,
    p.category,
    p.reorder_level,
    COALESCE(SUM(b.quantity), 0) AS total_quantity
  FROM products p
  LEFT JOIN product_batches b ON b.product_id = p.id
  GROUP BY p.id, p.name, p.category, p.reorder_level
)
SELECT
  product_id,
  name,
  category,
  reorder_level,
  total_quantity,
  CASE
    WHEN total_quantity = 0 THEN 'OUT_OF_STOCK'
    WHEN total_quantity <= reorder_level THEN 'LOW_STOCK'
    ELSE 'OK'
  END AS stock_status
FROM inv
ORDER BY product_id`

func (r *inventoryRepo) FullView(ctx context.Context) ([]dto.InventoryRow, error) {
	var rows []dto.InventoryRow
	err := r.db.WithContext(ctx).Raw(inventoryViewSQL).Scan(&rows).Error
	return rows, err
}

func (r *inventoryRepo) Expiring(ctx context.Context, days int) ([]dto.ExpiringRow, error) {
	var rows []dto.ExpiringRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  p.id AS product_id,
		  p.name,
		  p.category,
		  MIN(b.expiry_date) AS nearest_expiry,
		  SUM(b.quantity) AS total_quantity
		FROM product_batches b
		JOIN products p ON p.id = b.product_id
		WHERE b.quantity > 0 AND b.expiry_date IS NOT NULL
		GROUP BY p.id, p.name, p.category
		HAVING MIN(b.expiry_date) <= CURRENT_DATE + make_interval(days => ?)
		ORDER BY nearest_expiry ASC`, days).Scan(&rows).Error
	return rows, err
}

func (r *inventoryRepo) StockSummary(ctx context.Context) ([]dto.StockSummaryRow, error) {
	var rows []dto.StockSummaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		  p.id AS product_id,
		  p.name,
		  p.category,
		  p.reorder_level,
		  COALESCE(SUM(b.quantity), 0) AS total_quantity,
		  COUNT(*) FILTER (WHERE b.quantity > 0) AS batch_count,
		  MIN(b.expiry_date) FILTER (WHERE b.quantity > 0) AS nearest_expiry,
		  (p.reorder_level > 0 AND COALESCE(SUM(b.quantity), 0) <= p.reorder_level) AS is_low_stock
		FROM products p
		LEFT JOIN product_batches b ON b.product_id = p.id
		GROUP BY p.id, p.name, p.category, p.reorder_level
		ORDER BY p.name ASC`).Scan(&rows).Error
	return rows, err
}

func (r *inventoryRepo) TotalQuantity(ctx context.Context, productID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0)
		FROM product_batches
		WHERE product_id = ?`, productID).Scan(&total).Error
	return total, err
}
