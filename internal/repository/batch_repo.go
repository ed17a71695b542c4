package repository

import (
	"context"
	"errors"
	"time"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BatchRepository is the data access contract for stock batches.
//
// The *Tx methods participate in a caller-owned transaction and take the live
// tx handle explicitly. Reads that precede a deduction acquire a row-level
// write-intent lock (SELECT ... FOR UPDATE), so two concurrent operations on
// the same batch can never both observe a stale quantity.
type BatchRepository interface {
	Create(ctx context.Context, b *model.StockBatch) error
	FindByID(ctx context.Context, id uint) (*model.StockBatch, error)
	ListRecent(ctx context.Context, limit int) ([]model.StockBatch, error)

	// FindByIDForUpdateTx loads one batch holding an exclusive row lock for
	// the remainder of the transaction.
	FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.StockBatch, error)
	// ListForDeductionTx returns a product's batches with stock remaining, in
	// FEFO order (soonest expiry first, null expiry last, ties by id), all
	// locked for update.
	ListForDeductionTx(tx *gorm.DB, productID uint) ([]model.StockBatch, error)
	// DeductTx decrements a batch's quantity. The caller must already hold the
	// row lock and have verified the quantity is available.
	DeductTx(tx *gorm.DB, id uint, qty int) error

	// LatestSupplierInvoiceNo returns the supplier invoice number of the most
	// recently created batch that has one, or "" when none exists.
	LatestSupplierInvoiceNo(ctx context.Context) (string, error)
	MarkPaid(ctx context.Context, ids []uint, supplierInvoiceNo *string, paidAt time.Time) ([]model.StockBatch, error)
	SupplierSummary(ctx context.Context, filter dto.SupplierSummaryFilter) ([]dto.SupplierSummaryRow, error)
	UnpaidBySupplier(ctx context.Context, supplierID uint) ([]dto.UnpaidBatchRow, error)
	ExpiredWithStock(ctx context.Context) ([]model.StockBatch, error)

	DB() *gorm.DB
}

type batchRepo struct{ db *gorm.DB }

func NewBatchRepository(db *gorm.DB) BatchRepository { return &batchRepo{db: db} }

func (r *batchRepo) DB() *gorm.DB { return r.db }

func (r *batchRepo) Create(ctx context.Context, b *model.StockBatch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *batchRepo) FindByID(ctx context.Context, id uint) (*model.StockBatch, error) {
	var b model.StockBatch
	err := r.db.WithContext(ctx).Preload("Product").Preload("Supplier").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *batchRepo) ListRecent(ctx context.Context, limit int) ([]model.StockBatch, error) {
	var batches []model.StockBatch
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Supplier").
		Order("created_at DESC").Limit(limit).
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.StockBatch, error) {
	var b model.StockBatch
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *batchRepo) ListForDeductionTx(tx *gorm.DB, productID uint) ([]model.StockBatch, error) {
	var batches []model.StockBatch
	// Null expiry sorts last: undated batches are treated as least urgent.
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND quantity > 0", productID).
		Order("expiry_date ASC NULLS LAST, id ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) DeductTx(tx *gorm.DB, id uint, qty int) error {
	res := tx.Model(&model.StockBatch{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *batchRepo) LatestSupplierInvoiceNo(ctx context.Context) (string, error) {
	var b model.StockBatch
	err := r.db.WithContext(ctx).
		Where("supplier_invoice_no IS NOT NULL").
		Order("created_at DESC, id DESC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if b.SupplierInvoiceNo == nil {
		return "", nil
	}
	return *b.SupplierInvoiceNo, nil
}

func (r *batchRepo) MarkPaid(ctx context.Context, ids []uint, supplierInvoiceNo *string, paidAt time.Time) ([]model.StockBatch, error) {
	updates := map[string]interface{}{
		"is_paid": true,
		"paid_at": paidAt,
	}
	if supplierInvoiceNo != nil {
		updates["supplier_invoice_no"] = *supplierInvoiceNo
	}
	res := r.db.WithContext(ctx).Model(&model.StockBatch{}).
		Where("id IN ?", ids).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var batches []model.StockBatch
	err := r.db.WithContext(ctx).Preload("Product").Preload("Supplier").
		Where("id IN ?", ids).Find(&batches).Error
	return batches, err
}

func (r *batchRepo) SupplierSummary(ctx context.Context, filter dto.SupplierSummaryFilter) ([]dto.SupplierSummaryRow, error) {
	q := r.db.WithContext(ctx).
		Table("product_batches AS pb").
		Select(`s.id AS supplier_id,
			s.name AS supplier_name,
			COUNT(*) AS batch_count,
			COUNT(*) FILTER (WHERE pb.is_paid) AS paid_batches,
			COUNT(*) FILTER (WHERE NOT pb.is_paid) AS unpaid_batches,
			COALESCE(SUM(pb.quantity * pb.unit_cost), 0) AS total_amount,
			MIN(pb.created_at) AS first_batch,
			MAX(pb.created_at) AS last_batch`).
		Joins("JOIN suppliers s ON s.id = pb.supplier_id").
		Where("pb.supplier_id IS NOT NULL")

	switch filter.Status {
	case "paid":
		q = q.Where("pb.is_paid")
	case "all":
		// no paid filter
	default: // unpaid
		q = q.Where("NOT pb.is_paid")
	}
	if filter.From != "" {
		q = q.Where("pb.created_at::date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("pb.created_at::date <= ?", filter.To)
	}

	var rows []dto.SupplierSummaryRow
	err := q.Group("s.id, s.name").Order("s.name ASC").Scan(&rows).Error
	return rows, err
}

func (r *batchRepo) UnpaidBySupplier(ctx context.Context, supplierID uint) ([]dto.UnpaidBatchRow, error) {
	var rows []dto.UnpaidBatchRow
	err := r.db.WithContext(ctx).
		Table("product_batches AS pb").
		Select(`pb.id AS batch_id,
			pb.product_id,
			p.name AS product_name,
			p.category,
			pb.batch_code,
			pb.quantity,
			pb.unit_cost,
			(pb.quantity * pb.unit_cost) AS total_amount,
			pb.supplier_id,
			s.name AS supplier_name,
			pb.supplier_invoice_no,
			pb.is_paid,
			pb.created_at`).
		Joins("JOIN products p ON p.id = pb.product_id").
		Joins("LEFT JOIN suppliers s ON s.id = pb.supplier_id").
		Where("pb.supplier_id = ? AND NOT pb.is_paid", supplierID).
		Order("pb.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *batchRepo) ExpiredWithStock(ctx context.Context) ([]model.StockBatch, error) {
	var batches []model.StockBatch
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("quantity > 0 AND expiry_date < CURRENT_DATE").
		Order("expiry_date ASC").
		Find(&batches).Error
	return batches, err
}
