package repository

import (
	"context"

	"github.com/diyath7/small-shop-system/internal/model"

	"gorm.io/gorm"
)

type WriteOffRepository interface {
	// CreateTx inserts a write-off record inside the caller's transaction —
	// the same transaction that decrements the batch quantity.
	CreateTx(ctx context.Context, tx *gorm.DB, w *model.StockWriteOff) error
	List(ctx context.Context) ([]model.StockWriteOff, error)
	DB() *gorm.DB
}

type writeOffRepo struct{ db *gorm.DB }

func NewWriteOffRepository(db *gorm.DB) WriteOffRepository { return &writeOffRepo{db: db} }

func (r *writeOffRepo) DB() *gorm.DB { return r.db }

func (r *writeOffRepo) CreateTx(ctx context.Context, tx *gorm.DB, w *model.StockWriteOff) error {
	return tx.WithContext(ctx).Create(w).Error
}

func (r *writeOffRepo) List(ctx context.Context) ([]model.StockWriteOff, error) {
	var writeOffs []model.StockWriteOff
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Batch").Preload("User").
		Order("write_off_date DESC, id DESC").
		Find(&writeOffs).Error
	return writeOffs, err
}
