package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"
)

func newStockServiceForTest(batchRepo *stubBatchRepo) (StockService, *stubWriteOffRepo) {
	writeOffRepo := &stubWriteOffRepo{}
	return NewStockService(batchRepo, writeOffRepo, &stubInventoryRepo{}), writeOffRepo
}

func TestWriteOffDeductsAndRecordsCost(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 7, ProductID: 3, BatchCode: "B-7", Quantity: 10,
			UnitCost: decimal.RequireFromString("2.50"), ExpiryDate: datePtr(2025, time.April, 1)},
	)
	svc, writeOffRepo := newStockServiceForTest(batchRepo)

	resp, err := svc.WriteOff(context.Background(), 42, dto.WriteOffRequest{
		BatchID:  7,
		Quantity: 4,
		Reason:   "DAMAGED",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, batchRepo.quantity(7))
	assert.Equal(t, "DAMAGED", resp.Reason)
	// Valued at the batch cost, not the sale price.
	assert.True(t, resp.TotalCost.Equal(decimal.RequireFromString("10.00")), "total cost was %s", resp.TotalCost)
	assert.True(t, resp.WriteOffDate.Equal(model.Today()))

	require.Len(t, writeOffRepo.created, 1)
	assert.Equal(t, uint(42), writeOffRepo.created[0].CreatedBy)
	assert.Equal(t, uint(3), writeOffRepo.created[0].ProductID)
}

func TestWriteOffDefaultsReasonToExpired(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 5, UnitCost: decimal.NewFromInt(1)},
	)
	svc, _ := newStockServiceForTest(batchRepo)

	resp, err := svc.WriteOff(context.Background(), 1, dto.WriteOffRequest{BatchID: 1, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "EXPIRED", resp.Reason)
}

func TestWriteOffFullBatchAllowed(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 5, UnitCost: decimal.NewFromInt(1)},
	)
	svc, _ := newStockServiceForTest(batchRepo)

	_, err := svc.WriteOff(context.Background(), 1, dto.WriteOffRequest{BatchID: 1, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, batchRepo.quantity(1))
}

func TestWriteOffRejectsExcessQuantity(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 5, UnitCost: decimal.NewFromInt(1)},
	)
	svc, writeOffRepo := newStockServiceForTest(batchRepo)

	_, err := svc.WriteOff(context.Background(), 1, dto.WriteOffRequest{BatchID: 1, Quantity: 6})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Quantity exceeds available batch stock", validation.Error())

	// Nothing recorded, nothing deducted.
	assert.Empty(t, writeOffRepo.created)
	assert.Equal(t, 5, batchRepo.quantity(1))
}

func TestWriteOffUnknownBatch(t *testing.T) {
	svc, _ := newStockServiceForTest(newStubBatchRepo())

	_, err := svc.WriteOff(context.Background(), 1, dto.WriteOffRequest{BatchID: 99, Quantity: 1})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestWriteOffValidation(t *testing.T) {
	svc, _ := newStockServiceForTest(newStubBatchRepo())

	_, err := svc.WriteOff(context.Background(), 1, dto.WriteOffRequest{BatchID: 0, Quantity: 1})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.WriteOff(context.Background(), 1, dto.WriteOffRequest{BatchID: 1, Quantity: 0})
	require.ErrorAs(t, err, &validation)
}
