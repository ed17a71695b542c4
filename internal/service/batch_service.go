package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"
	"github.com/diyath7/small-shop-system/internal/repository"
)

const supplierInvoicePrefix = "SUPINV"

var trailingDigits = regexp.MustCompile(`(\d+)$`)

type BatchService interface {
	CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error)
	NextSupplierInvoiceNo(ctx context.Context) (string, error)
	ListRecent(ctx context.Context) ([]dto.BatchResponse, error)
	SupplierSummary(ctx context.Context, filter dto.SupplierSummaryFilter) ([]dto.SupplierSummaryRow, error)
	UnpaidBySupplier(ctx context.Context, supplierID uint) ([]dto.UnpaidBatchRow, error)
	MarkPaid(ctx context.Context, req dto.MarkPaidRequest) (*dto.MarkPaidResponse, error)
}

type batchService struct {
	repo        repository.BatchRepository
	productRepo repository.ProductRepository
}

func NewBatchService(repo repository.BatchRepository, productRepo repository.ProductRepository) BatchService {
	return &batchService{repo: repo, productRepo: productRepo}
}

func (s *batchService) CreateBatch(ctx context.Context, req dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if req.ProductID == 0 || strings.TrimSpace(req.BatchCode) == "" {
		return nil, validationf("product_id and batch_code are required")
	}
	if req.Quantity <= 0 {
		return nil, validationf("Quantity must be a positive number")
	}
	if req.UnitCost.IsNegative() {
		return nil, validationf("Unit cost must be >= 0")
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, notFoundf("Product not found")
	}

	invoiceNo := req.SupplierInvoiceNo
	if invoiceNo == nil || strings.TrimSpace(*invoiceNo) == "" {
		next, err := s.NextSupplierInvoiceNo(ctx)
		if err != nil {
			return nil, err
		}
		invoiceNo = &next
	} else {
		trimmed := strings.TrimSpace(*invoiceNo)
		invoiceNo = &trimmed
	}

	batch := model.StockBatch{
		ProductID:         req.ProductID,
		BatchCode:         req.BatchCode,
		ExpiryDate:        req.ExpiryDate,
		Quantity:          req.Quantity,
		UnitCost:          req.UnitCost,
		SupplierID:        req.SupplierID,
		SupplierInvoiceNo: invoiceNo,
	}
	if err := s.repo.Create(ctx, &batch); err != nil {
		return nil, err
	}
	resp := batchToResponse(&batch)
	return &resp, nil
}

// NextSupplierInvoiceNo derives the next advisory number from the newest batch
// carrying one: parse the trailing digits, increment, re-pad. Best-effort
// sequencing — two concurrent batch creations can read the same latest row and
// mint the same number.
func (s *batchService) NextSupplierInvoiceNo(ctx context.Context) (string, error) {
	last, err := s.repo.LatestSupplierInvoiceNo(ctx)
	if err != nil {
		return "", err
	}
	next := 1
	if m := trailingDigits.FindStringSubmatch(last); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%05d", supplierInvoicePrefix, next), nil
}

func (s *batchService) ListRecent(ctx context.Context) ([]dto.BatchResponse, error) {
	batches, err := s.repo.ListRecent(ctx, 20)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		out = append(out, batchToResponse(&batches[i]))
	}
	return out, nil
}

func (s *batchService) SupplierSummary(ctx context.Context, filter dto.SupplierSummaryFilter) ([]dto.SupplierSummaryRow, error) {
	for _, d := range []string{filter.From, filter.To} {
		if d != "" {
			if _, err := model.ParseDate(d); err != nil {
				return nil, validationf("from/to must be YYYY-MM-DD")
			}
		}
	}
	return s.repo.SupplierSummary(ctx, filter)
}

func (s *batchService) UnpaidBySupplier(ctx context.Context, supplierID uint) ([]dto.UnpaidBatchRow, error) {
	if supplierID == 0 {
		return nil, validationf("Valid supplier_id query param is required")
	}
	return s.repo.UnpaidBySupplier(ctx, supplierID)
}

func (s *batchService) MarkPaid(ctx context.Context, req dto.MarkPaidRequest) (*dto.MarkPaidResponse, error) {
	if len(req.BatchIDs) == 0 {
		return nil, validationf("batch_ids array is required and cannot be empty")
	}
	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	batches, err := s.repo.MarkPaid(ctx, req.BatchIDs, req.SupplierInvoiceNo, paidAt)
	if err != nil {
		return nil, notFoundf("No batches were updated (check batch_ids)")
	}
	resp := &dto.MarkPaidResponse{UpdatedCount: int64(len(batches))}
	for i := range batches {
		resp.UpdatedBatches = append(resp.UpdatedBatches, batchToResponse(&batches[i]))
	}
	return resp, nil
}

func batchToResponse(b *model.StockBatch) dto.BatchResponse {
	resp := dto.BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		BatchCode:         b.BatchCode,
		ExpiryDate:        b.ExpiryDate,
		Quantity:          b.Quantity,
		UnitCost:          b.UnitCost,
		SupplierID:        b.SupplierID,
		SupplierInvoiceNo: b.SupplierInvoiceNo,
		IsPaid:            b.IsPaid,
		PaidAt:            b.PaidAt,
		CreatedAt:         b.CreatedAt,
	}
	if b.Product != nil {
		resp.ProductName = b.Product.Name
		resp.Category = b.Product.Category
	}
	if b.Supplier != nil {
		resp.SupplierName = b.Supplier.Name
	}
	return resp
}
