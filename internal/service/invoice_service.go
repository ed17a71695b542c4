package service

import (
	"context"
	"fmt"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"
	"github.com/diyath7/small-shop-system/internal/repository"
	"github.com/diyath7/small-shop-system/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	invoiceNumberPrefix = "INV"
	walkInCustomer      = "Walk-in Customer"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id uint) (*dto.InvoiceDetailResponse, error)
	ListInvoices(ctx context.Context, filter dto.InvoiceFilter) ([]dto.InvoiceListItem, error)
	ListInvoicesByRange(ctx context.Context, filter dto.InvoiceRangeFilter) ([]dto.InvoiceListItem, error)
}

type invoiceService struct {
	repo        repository.InvoiceRepository
	batchRepo   repository.BatchRepository
	productRepo repository.ProductRepository
	dispatcher  *worker.Dispatcher
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	dispatcher *worker.Dispatcher,
) InvoiceService {
	return &invoiceService{
		repo:        repo,
		batchRepo:   batchRepo,
		productRepo: productRepo,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// lowStockCandidate remembers a product whose remaining stock dropped to its
// reorder level during deduction; alerts fire only after the commit.
type lowStockCandidate struct {
	productID uint
	name      string
	remaining int
	reorder   int
}

// ── CreateInvoice ─────────────────────────────────────────────────────────────
// One ACID transaction:
//  1. mint the invoice number from its sequence
//  2. per item: lock the product's batches, check availability, deduct FEFO
//  3. collect every shortfall — nothing commits if ANY product is short
//  4. persist header + lines with the final discounted total
//
// Deduction walks batches ordered by soonest expiry (null expiry last, ties by
// id) and takes min(remaining, batch quantity) from each. The invoice line
// always carries the originally requested quantity at the client-supplied unit
// price — never fragmented per batch.

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(req.Items) == 0 {
		return nil, validationf("Invoice items are required")
	}
	if req.Discount.IsNegative() {
		return nil, validationf("Discount cannot be negative.")
	}
	for _, item := range req.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, validationf("Invalid item data")
		}
		if item.UnitPrice.IsNegative() {
			return nil, validationf("Unit price cannot be negative.")
		}
	}

	// Calendar-day comparison: an invoice dated today is valid at any
	// time of day, tomorrow is rejected no matter the hour.
	invDate := model.Today()
	if req.InvoiceDate != nil && !req.InvoiceDate.IsZero() {
		invDate = *req.InvoiceDate
	}
	if invDate.After(model.Today()) {
		return nil, validationf("Invoice date cannot be in the future.")
	}

	customer := req.CustomerName
	if customer == "" {
		customer = walkInCustomer
	}

	// Subtotal uses the client-supplied unit price per line: discretionary
	// pricing per sale, not the catalog price.
	subtotal := decimal.Zero
	for _, item := range req.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	total := decimal.Max(decimal.Zero, subtotal.Sub(req.Discount))

	var (
		invoice    model.Invoice
		candidates []lowStockCandidate
	)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.repo.NextInvoiceNumber(ctx, tx)
		if err != nil {
			return err
		}

		invoice = model.Invoice{
			InvoiceNumber: fmt.Sprintf("%s%05d", invoiceNumberPrefix, num),
			CustomerName:  customer,
			InvoiceDate:   invDate,
			Discount:      req.Discount,
			TotalAmount:   total,
			Status:        "PAID",
		}

		var shortfalls []string
		for _, item := range req.Items {
			name := fmt.Sprintf("Product %d", item.ProductID)
			var reorder int
			if p, err := s.productRepo.FindByID(ctx, item.ProductID); err == nil {
				name = p.Name
				reorder = p.ReorderLevel
			}

			// Locks every batch row with stock for this product until commit
			// or rollback — concurrent sales serialize here.
			batches, err := s.batchRepo.ListForDeductionTx(tx, item.ProductID)
			if err != nil {
				return err
			}

			available := 0
			for _, b := range batches {
				available += b.Quantity
			}
			if available < item.Quantity {
				shortfalls = append(shortfalls, fmt.Sprintf(
					"Not enough stock for %s. Requested %d, available %d.",
					name, item.Quantity, available))
				continue
			}

			remaining := item.Quantity
			for _, b := range batches {
				if remaining <= 0 {
					break
				}
				deduct := remaining
				if b.Quantity < deduct {
					deduct = b.Quantity
				}
				if err := s.batchRepo.DeductTx(tx, b.ID, deduct); err != nil {
					return err
				}
				remaining -= deduct
			}

			invoice.Lines = append(invoice.Lines, model.InvoiceLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineTotal: item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			})

			if left := available - item.Quantity; reorder > 0 && left <= reorder {
				candidates = append(candidates, lowStockCandidate{
					productID: item.ProductID,
					name:      name,
					remaining: left,
					reorder:   reorder,
				})
			}
		}

		// Every item has been examined; one short product voids the whole
		// invoice, including the deductions applied above.
		if len(shortfalls) > 0 {
			return &ShortfallError{Shortfalls: shortfalls}
		}

		return s.repo.CreateTx(ctx, tx, &invoice)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Low-stock alerts are best-effort and must never fail the sale.
	if s.dispatcher != nil {
		for _, cand := range candidates {
			_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlert{
				ProductID:    cand.productID,
				ProductName:  cand.name,
				Remaining:    cand.remaining,
				ReorderLevel: cand.reorder,
			})
		}
	}

	return &dto.InvoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerName:  invoice.CustomerName,
		InvoiceDate:   invoice.InvoiceDate,
		Subtotal:      subtotal,
		Discount:      invoice.Discount,
		TotalAmount:   invoice.TotalAmount,
		Status:        invoice.Status,
	}, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *invoiceService) GetInvoice(ctx context.Context, id uint) (*dto.InvoiceDetailResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundf("Invoice not found")
	}

	items := make([]dto.InvoiceLineResponse, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		name := ""
		if line.Product != nil {
			name = line.Product.Name
		}
		items = append(items, dto.InvoiceLineResponse{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}

	return &dto.InvoiceDetailResponse{
		Invoice: invoiceToListItem(inv),
		Items:   items,
	}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter dto.InvoiceFilter) ([]dto.InvoiceListItem, error) {
	if filter.Date != "" {
		if _, err := model.ParseDate(filter.Date); err != nil {
			return nil, validationf("date must be YYYY-MM-DD")
		}
	}
	invoices, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return invoicesToListItems(invoices), nil
}

func (s *invoiceService) ListInvoicesByRange(ctx context.Context, filter dto.InvoiceRangeFilter) ([]dto.InvoiceListItem, error) {
	for _, d := range []string{filter.From, filter.To} {
		if d != "" {
			if _, err := model.ParseDate(d); err != nil {
				return nil, validationf("from/to must be YYYY-MM-DD")
			}
		}
	}
	invoices, err := s.repo.ListRange(ctx, filter)
	if err != nil {
		return nil, err
	}
	return invoicesToListItems(invoices), nil
}

func invoiceToListItem(inv *model.Invoice) dto.InvoiceListItem {
	return dto.InvoiceListItem{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		InvoiceDate:   inv.InvoiceDate,
		Discount:      inv.Discount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status,
	}
}

func invoicesToListItems(invoices []model.Invoice) []dto.InvoiceListItem {
	items := make([]dto.InvoiceListItem, 0, len(invoices))
	for i := range invoices {
		items = append(items, invoiceToListItem(&invoices[i]))
	}
	return items
}
