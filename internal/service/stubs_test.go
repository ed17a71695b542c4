package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"
)

// In-memory repository stubs. Services open no real transaction when the
// repository's DB() returns nil, so these run the exact transactional code
// paths synchronously.

var errStubNotFound = errors.New("not found")

type stubBatchRepo struct {
	batches []model.StockBatch

	deductions map[uint]int // batch id -> total deducted
	latestNo   string
	markedPaid []uint
}

func newStubBatchRepo(batches ...model.StockBatch) *stubBatchRepo {
	return &stubBatchRepo{batches: batches, deductions: make(map[uint]int)}
}

func (r *stubBatchRepo) DB() *gorm.DB { return nil }

func (r *stubBatchRepo) Create(_ context.Context, b *model.StockBatch) error {
	b.ID = uint(len(r.batches) + 1)
	b.CreatedAt = time.Now()
	r.batches = append(r.batches, *b)
	return nil
}

func (r *stubBatchRepo) FindByID(_ context.Context, id uint) (*model.StockBatch, error) {
	for i := range r.batches {
		if r.batches[i].ID == id {
			b := r.batches[i]
			return &b, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubBatchRepo) ListRecent(_ context.Context, limit int) ([]model.StockBatch, error) {
	out := make([]model.StockBatch, len(r.batches))
	copy(out, r.batches)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubBatchRepo) FindByIDForUpdateTx(_ *gorm.DB, id uint) (*model.StockBatch, error) {
	return r.FindByID(context.Background(), id)
}

// ListForDeductionTx mirrors the SQL ordering: soonest expiry first, null
// expiry last, ties broken by id.
func (r *stubBatchRepo) ListForDeductionTx(_ *gorm.DB, productID uint) ([]model.StockBatch, error) {
	var out []model.StockBatch
	for _, b := range r.batches {
		if b.ProductID == productID && b.Quantity > 0 {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate == nil:
			return a.ID < b.ID
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		case !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		default:
			return a.ID < b.ID
		}
	})
	return out, nil
}

func (r *stubBatchRepo) DeductTx(_ *gorm.DB, id uint, qty int) error {
	for i := range r.batches {
		if r.batches[i].ID == id {
			if r.batches[i].Quantity < qty {
				return errors.New("quantity check constraint violated")
			}
			r.batches[i].Quantity -= qty
			r.deductions[id] += qty
			return nil
		}
	}
	return errStubNotFound
}

func (r *stubBatchRepo) LatestSupplierInvoiceNo(_ context.Context) (string, error) {
	return r.latestNo, nil
}

func (r *stubBatchRepo) MarkPaid(_ context.Context, ids []uint, supplierInvoiceNo *string, paidAt time.Time) ([]model.StockBatch, error) {
	var updated []model.StockBatch
	for i := range r.batches {
		for _, id := range ids {
			if r.batches[i].ID == id {
				r.batches[i].IsPaid = true
				r.batches[i].PaidAt = &paidAt
				if supplierInvoiceNo != nil {
					r.batches[i].SupplierInvoiceNo = supplierInvoiceNo
				}
				r.markedPaid = append(r.markedPaid, id)
				updated = append(updated, r.batches[i])
			}
		}
	}
	return updated, nil
}

func (r *stubBatchRepo) SupplierSummary(_ context.Context, _ dto.SupplierSummaryFilter) ([]dto.SupplierSummaryRow, error) {
	return nil, nil
}

func (r *stubBatchRepo) UnpaidBySupplier(_ context.Context, _ uint) ([]dto.UnpaidBatchRow, error) {
	return nil, nil
}

func (r *stubBatchRepo) ExpiredWithStock(_ context.Context) ([]model.StockBatch, error) {
	return nil, nil
}

func (r *stubBatchRepo) quantity(id uint) int {
	for _, b := range r.batches {
		if b.ID == id {
			return b.Quantity
		}
	}
	return -1
}

type stubInvoiceRepo struct {
	nextNum int64
	created []*model.Invoice
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

func (r *stubInvoiceRepo) NextInvoiceNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.nextNum++
	return r.nextNum, nil
}

func (r *stubInvoiceRepo) CreateTx(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	inv.ID = uint(len(r.created) + 1)
	r.created = append(r.created, inv)
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uint) (*model.Invoice, error) {
	for _, inv := range r.created {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.InvoiceFilter) ([]model.Invoice, error) {
	out := make([]model.Invoice, 0, len(r.created))
	for _, inv := range r.created {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *stubInvoiceRepo) ListRange(_ context.Context, _ dto.InvoiceRangeFilter) ([]model.Invoice, error) {
	return r.List(context.Background(), dto.InvoiceFilter{})
}

type stubProductRepo struct {
	products map[uint]*model.Product
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	m := make(map[uint]*model.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubProductRepo{products: m}
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = uint(len(r.products) + 1)
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, errStubNotFound
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

type stubWriteOffRepo struct {
	created []*model.StockWriteOff
}

func (r *stubWriteOffRepo) DB() *gorm.DB { return nil }

func (r *stubWriteOffRepo) CreateTx(_ context.Context, _ *gorm.DB, w *model.StockWriteOff) error {
	w.ID = uint(len(r.created) + 1)
	r.created = append(r.created, w)
	return nil
}

func (r *stubWriteOffRepo) List(_ context.Context) ([]model.StockWriteOff, error) {
	out := make([]model.StockWriteOff, 0, len(r.created))
	for _, w := range r.created {
		out = append(out, *w)
	}
	return out, nil
}

type stubInventoryRepo struct {
	rows     []dto.InventoryRow
	expiring []dto.ExpiringRow
	summary  []dto.StockSummaryRow

	expiringDays int
}

func (r *stubInventoryRepo) FullView(_ context.Context) ([]dto.InventoryRow, error) {
	return r.rows, nil
}

func (r *stubInventoryRepo) Expiring(_ context.Context, days int) ([]dto.ExpiringRow, error) {
	r.expiringDays = days
	return r.expiring, nil
}

func (r *stubInventoryRepo) StockSummary(_ context.Context) ([]dto.StockSummaryRow, error) {
	return r.summary, nil
}

func (r *stubInventoryRepo) TotalQuantity(_ context.Context, _ uint) (int, error) {
	total := 0
	for _, row := range r.rows {
		total += row.TotalQuantity
	}
	return total, nil
}

func datePtr(year int, month time.Month, day int) *model.Date {
	d := model.NewDate(year, month, day)
	return &d
}
