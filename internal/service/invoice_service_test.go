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

func newInvoiceServiceForTest(batchRepo *stubBatchRepo, productRepo *stubProductRepo) (InvoiceService, *stubInvoiceRepo) {
	invoiceRepo := &stubInvoiceRepo{}
	return NewInvoiceService(invoiceRepo, batchRepo, productRepo, nil), invoiceRepo
}

func TestCreateInvoiceDeductsSoonestExpiryFirst(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, BatchCode: "B1", Quantity: 5, ExpiryDate: datePtr(2025, time.January, 1)},
		model.StockBatch{ID: 2, ProductID: 1, BatchCode: "B2", Quantity: 10, ExpiryDate: datePtr(2025, time.June, 1)},
	)
	productRepo := newStubProductRepo(&model.Product{ID: 1, Name: "Milk"})
	svc, invoiceRepo := newInvoiceServiceForTest(batchRepo, productRepo)

	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 8, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	// 5 from the January batch, 3 from June.
	assert.Equal(t, 0, batchRepo.quantity(1))
	assert.Equal(t, 7, batchRepo.quantity(2))
	assert.Equal(t, 5, batchRepo.deductions[1])
	assert.Equal(t, 3, batchRepo.deductions[2])

	require.Len(t, invoiceRepo.created, 1)
	inv := invoiceRepo.created[0]
	require.Len(t, inv.Lines, 1)
	// The line carries the requested quantity, never one line per batch.
	assert.Equal(t, 8, inv.Lines[0].Quantity)
	assert.True(t, inv.Lines[0].LineTotal.Equal(decimal.NewFromInt(80)))

	assert.Equal(t, "INV00001", resp.InvoiceNumber)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, "PAID", resp.Status)
}

func TestCreateInvoiceNullExpirySortsLast(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 4, ExpiryDate: nil},
		model.StockBatch{ID: 2, ProductID: 1, Quantity: 4, ExpiryDate: datePtr(2027, time.March, 15)},
	)
	productRepo := newStubProductRepo(&model.Product{ID: 1, Name: "Rice"})
	svc, _ := newInvoiceServiceForTest(batchRepo, productRepo)

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 5, UnitPrice: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	// The dated batch drains first even though the undated one has a lower id.
	assert.Equal(t, 0, batchRepo.quantity(2))
	assert.Equal(t, 3, batchRepo.quantity(1))
}

func TestCreateInvoiceExactAvailabilitySucceeds(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 3, ExpiryDate: datePtr(2026, time.May, 1)},
		model.StockBatch{ID: 2, ProductID: 1, Quantity: 4, ExpiryDate: datePtr(2026, time.July, 1)},
	)
	productRepo := newStubProductRepo(&model.Product{ID: 1, Name: "Sugar"})
	svc, invoiceRepo := newInvoiceServiceForTest(batchRepo, productRepo)

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 7, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, batchRepo.quantity(1))
	assert.Equal(t, 0, batchRepo.quantity(2))
	assert.Len(t, invoiceRepo.created, 1)
}

func TestCreateInvoiceShortfallReportsEveryShortItem(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 4, ExpiryDate: datePtr(2026, time.May, 1)},
		// Product 2 has no stock at all.
		model.StockBatch{ID: 2, ProductID: 3, Quantity: 100, ExpiryDate: datePtr(2026, time.May, 1)},
	)
	productRepo := newStubProductRepo(
		&model.Product{ID: 1, Name: "Milk"},
		&model.Product{ID: 2, Name: "Bread"},
		&model.Product{ID: 3, Name: "Eggs"},
	)
	svc, invoiceRepo := newInvoiceServiceForTest(batchRepo, productRepo)

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 10, UnitPrice: decimal.NewFromInt(5)},
			{ProductID: 2, Quantity: 2, UnitPrice: decimal.NewFromInt(3)},
			{ProductID: 3, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})

	var shortfall *ShortfallError
	require.ErrorAs(t, err, &shortfall)
	require.Len(t, shortfall.Shortfalls, 2)
	assert.Equal(t, "Not enough stock for Milk. Requested 10, available 4.", shortfall.Shortfalls[0])
	assert.Equal(t, "Not enough stock for Bread. Requested 2, available 0.", shortfall.Shortfalls[1])

	// One short product voids the whole invoice.
	assert.Empty(t, invoiceRepo.created)
}

func TestCreateInvoiceDiscountCannotPushTotalBelowZero(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 50, ExpiryDate: datePtr(2026, time.May, 1)},
	)
	productRepo := newStubProductRepo(&model.Product{ID: 1, Name: "Tea"})
	svc, _ := newInvoiceServiceForTest(batchRepo, productRepo)

	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Discount: decimal.NewFromInt(150),
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 10, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.TotalAmount.Equal(decimal.Zero), "total was %s", resp.TotalAmount)
}

func TestCreateInvoiceRejectsFutureDate(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 50, ExpiryDate: nil},
	)
	productRepo := newStubProductRepo(&model.Product{ID: 1, Name: "Tea"})
	svc, _ := newInvoiceServiceForTest(batchRepo, productRepo)

	tomorrow := model.DateOf(time.Now().AddDate(0, 0, 1))
	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		InvoiceDate: &tomorrow,
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Invoice date cannot be in the future.", validation.Error())

	// Today is always valid, regardless of time of day.
	today := model.Today()
	_, err = svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		InvoiceDate: &today,
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
}

func TestCreateInvoiceDefaultsCustomerAndDate(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 50, ExpiryDate: nil},
	)
	productRepo := newStubProductRepo(&model.Product{ID: 1, Name: "Tea"})
	svc, _ := newInvoiceServiceForTest(batchRepo, productRepo)

	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", resp.CustomerName)
	assert.True(t, resp.InvoiceDate.Equal(model.Today()))
}

func TestCreateInvoiceValidation(t *testing.T) {
	batchRepo := newStubBatchRepo()
	productRepo := newStubProductRepo()
	svc, _ := newInvoiceServiceForTest(batchRepo, productRepo)

	tests := []struct {
		name string
		req  dto.CreateInvoiceRequest
		msg  string
	}{
		{
			name: "no items",
			req:  dto.CreateInvoiceRequest{},
			msg:  "Invoice items are required",
		},
		{
			name: "zero quantity",
			req: dto.CreateInvoiceRequest{Items: []dto.InvoiceItemRequest{
				{ProductID: 1, Quantity: 0, UnitPrice: decimal.NewFromInt(1)},
			}},
			msg: "Invalid item data",
		},
		{
			name: "negative price",
			req: dto.CreateInvoiceRequest{Items: []dto.InvoiceItemRequest{
				{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
			}},
			msg: "Unit price cannot be negative.",
		},
		{
			name: "negative discount",
			req: dto.CreateInvoiceRequest{
				Discount: decimal.NewFromInt(-5),
				Items: []dto.InvoiceItemRequest{
					{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
				},
			},
			msg: "Discount cannot be negative.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateInvoice(context.Background(), tc.req)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tc.msg, validation.Error())
		})
	}
}

func TestCreateInvoiceNumbersIncrement(t *testing.T) {
	batchRepo := newStubBatchRepo(
		model.StockBatch{ID: 1, ProductID: 1, Quantity: 100, ExpiryDate: nil},
	)
	productRepo := newStubProductRepo(&model.Product{ID: 1, Name: "Tea"})
	svc, _ := newInvoiceServiceForTest(batchRepo, productRepo)

	req := dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	}
	first, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "INV00001", first.InvoiceNumber)
	assert.Equal(t, "INV00002", second.InvoiceNumber)
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc, _ := newInvoiceServiceForTest(newStubBatchRepo(), newStubProductRepo())

	_, err := svc.GetInvoice(context.Background(), 99)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListInvoicesRejectsBadDateFilter(t *testing.T) {
	svc, _ := newInvoiceServiceForTest(newStubBatchRepo(), newStubProductRepo())

	_, err := svc.ListInvoices(context.Background(), dto.InvoiceFilter{Date: "31-12-2025"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}
