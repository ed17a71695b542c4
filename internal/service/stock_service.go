package service

import (
	"context"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"
	"github.com/diyath7/small-shop-system/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultWriteOffReason = "EXPIRED"

// StockService covers the explicit loss path: write-offs and the stock health
// views. Write-off is a separate, ADMIN-only mutation — it reduces batch
// quantity like a sale does, but is never part of invoicing.
type StockService interface {
	WriteOff(ctx context.Context, userID uint, req dto.WriteOffRequest) (*dto.WriteOffResponse, error)
	ListWriteOffs(ctx context.Context) ([]dto.WriteOffResponse, error)
	StockSummary(ctx context.Context) ([]dto.StockSummaryRow, error)
	ExpiredBatches(ctx context.Context) ([]dto.ExpiredBatchRow, error)
}

type stockService struct {
	batchRepo     repository.BatchRepository
	writeOffRepo  repository.WriteOffRepository
	inventoryRepo repository.InventoryRepository
}

func NewStockService(
	batchRepo repository.BatchRepository,
	writeOffRepo repository.WriteOffRepository,
	inventoryRepo repository.InventoryRepository,
) StockService {
	return &stockService{
		batchRepo:     batchRepo,
		writeOffRepo:  writeOffRepo,
		inventoryRepo: inventoryRepo,
	}
}

// WriteOff atomically records the loss and decrements the batch. The batch row
// stays exclusively locked from the availability check through the decrement,
// so a concurrent sale cannot take the same units.
func (s *stockService) WriteOff(ctx context.Context, userID uint, req dto.WriteOffRequest) (*dto.WriteOffResponse, error) {
	if req.BatchID == 0 || req.Quantity <= 0 {
		return nil, validationf("batch_id and a positive quantity are required")
	}

	reason := req.Reason
	if reason == "" {
		reason = defaultWriteOffReason
	}

	var (
		writeOff model.StockWriteOff
		batch    *model.StockBatch
	)
	txErr := runTx(ctx, s.batchRepo.DB(), func(tx *gorm.DB) error {
		var err error
		batch, err = s.batchRepo.FindByIDForUpdateTx(tx, req.BatchID)
		if err != nil {
			return notFoundf("Batch not found")
		}
		if req.Quantity > batch.Quantity {
			return validationf("Quantity exceeds available batch stock")
		}

		// Valued at the batch's recorded cost, not the catalog price.
		totalCost := batch.UnitCost.Mul(decimal.NewFromInt(int64(req.Quantity)))

		writeOff = model.StockWriteOff{
			ProductID:    batch.ProductID,
			BatchID:      batch.ID,
			Quantity:     req.Quantity,
			Reason:       reason,
			UnitCost:     batch.UnitCost,
			TotalCost:    totalCost,
			WriteOffDate: model.Today(),
			CreatedBy:    userID,
			Notes:        req.Notes,
		}
		if err := s.writeOffRepo.CreateTx(ctx, tx, &writeOff); err != nil {
			return err
		}
		return s.batchRepo.DeductTx(tx, batch.ID, req.Quantity)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.WriteOffResponse{
		ID:           writeOff.ID,
		ProductID:    writeOff.ProductID,
		BatchID:      writeOff.BatchID,
		BatchCode:    batch.BatchCode,
		Quantity:     writeOff.Quantity,
		Reason:       writeOff.Reason,
		UnitCost:     writeOff.UnitCost,
		TotalCost:    writeOff.TotalCost,
		WriteOffDate: writeOff.WriteOffDate,
		Notes:        writeOff.Notes,
	}, nil
}

func (s *stockService) ListWriteOffs(ctx context.Context) ([]dto.WriteOffResponse, error) {
	writeOffs, err := s.writeOffRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WriteOffResponse, 0, len(writeOffs))
	for _, w := range writeOffs {
		resp := dto.WriteOffResponse{
			ID:           w.ID,
			ProductID:    w.ProductID,
			BatchID:      w.BatchID,
			Quantity:     w.Quantity,
			Reason:       w.Reason,
			UnitCost:     w.UnitCost,
			TotalCost:    w.TotalCost,
			WriteOffDate: w.WriteOffDate,
			Notes:        w.Notes,
		}
		if w.Product != nil {
			resp.ProductName = w.Product.Name
		}
		if w.Batch != nil {
			resp.BatchCode = w.Batch.BatchCode
		}
		if w.User != nil {
			resp.CreatedBy = w.User.Username
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *stockService) StockSummary(ctx context.Context) ([]dto.StockSummaryRow, error) {
	return s.inventoryRepo.StockSummary(ctx)
}

func (s *stockService) ExpiredBatches(ctx context.Context) ([]dto.ExpiredBatchRow, error) {
	batches, err := s.batchRepo.ExpiredWithStock(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ExpiredBatchRow, 0, len(batches))
	for _, b := range batches {
		row := dto.ExpiredBatchRow{
			BatchID:    b.ID,
			ProductID:  b.ProductID,
			BatchCode:  b.BatchCode,
			Quantity:   b.Quantity,
			ExpiryDate: b.ExpiryDate,
			UnitCost:   b.UnitCost,
			CreatedAt:  b.CreatedAt,
		}
		if b.Product != nil {
			row.ProductName = b.Product.Name
			row.Category = b.Product.Category
		}
		rows = append(rows, row)
	}
	return rows, nil
}
