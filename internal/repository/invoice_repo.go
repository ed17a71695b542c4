package repository

import (
	"context"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	// NextInvoiceNumber draws the next value from a dedicated Postgres
	// sequence inside the consuming transaction, so two concurrent invoices
	// can never mint the same number.
	NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	CreateTx(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	FindByID(ctx context.Context, id uint) (*model.Invoice, error)
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, error)
	ListRange(ctx context.Context, filter dto.InvoiceRangeFilter) ([]model.Invoice, error)
	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('invoice_numbers_seq')").Scan(&num).Error
	return num, err
}

func (r *invoiceRepo) CreateTx(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return tx.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Preload("Lines.Product").First(&inv, id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, error) {
	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.Date != "" {
		q = q.Where("invoice_date = ?", filter.Date)
	}
	var invoices []model.Invoice
	err := q.Order("invoice_date DESC, id DESC").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) ListRange(ctx context.Context, filter dto.InvoiceRangeFilter) ([]model.Invoice, error) {
	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.From != "" {
		q = q.Where("invoice_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("invoice_date <= ?", filter.To)
	}
	var invoices []model.Invoice
	err := q.Order("invoice_date DESC, id DESC").Find(&invoices).Error
	return invoices, err
}
