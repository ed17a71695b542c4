package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/diyath7/small-shop-system/internal/model"
)

type CreateBatchRequest struct {
	ProductID  uint        `json:"product_id" validate:"required,gt=0"`
	BatchCode  string      `json:"batch_code" validate:"required"`
	ExpiryDate *model.Date `json:"expiry_date"`
	Quantity   int         `json:"quantity"  validate:"required,gt=0"`
	UnitCost   decimal.Decimal `json:"unit_cost" validate:"min=0"`
	SupplierID *uint           `json:"supplier_id" validate:"omitempty,gt=0"`
	// SupplierInvoiceNo is auto-generated (SUPINV prefix) when omitted.
	SupplierInvoiceNo *string `json:"supplier_invoice_no"`
}

type BatchResponse struct {
	ID                uint            `json:"id"`
	ProductID         uint            `json:"product_id"`
	ProductName       string          `json:"product_name,omitempty"`
	Category          string          `json:"category,omitempty"`
	BatchCode         string          `json:"batch_code"`
	ExpiryDate        *model.Date     `json:"expiry_date"`
	Quantity          int             `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	SupplierID        *uint           `json:"supplier_id"`
	SupplierName      string          `json:"supplier_name,omitempty"`
	SupplierInvoiceNo *string         `json:"supplier_invoice_no"`
	IsPaid            bool            `json:"is_paid"`
	PaidAt            *time.Time      `json:"paid_at"`
	CreatedAt         time.Time       `json:"created_at"`
}

type NextSupplierInvoiceResponse struct {
	SupplierInvoiceNo string `json:"supplier_invoice_no"`
}

type MarkPaidRequest struct {
	BatchIDs          []uint     `json:"batch_ids" validate:"required,min=1,dive,gt=0"`
	SupplierInvoiceNo *string    `json:"supplier_invoice_no"`
	PaidAt            *time.Time `json:"paid_at"`
}

type MarkPaidResponse struct {
	UpdatedCount   int64           `json:"updated_count"`
	UpdatedBatches []BatchResponse `json:"updated_batches"`
}

// SupplierSummaryFilter is bound from GET /v1/batches/supplier-summary.
type SupplierSummaryFilter struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Status string `form:"status,default=unpaid"` // unpaid | paid | all
}

// SupplierSummaryRow aggregates what the shop owes one supplier.
type SupplierSummaryRow struct {
	SupplierID    uint            `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	BatchCount    int64           `json:"batch_count"`
	PaidBatches   int64           `json:"paid_batches"`
	UnpaidBatches int64           `json:"unpaid_batches"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	FirstBatch    time.Time       `json:"first_batch"`
	LastBatch     time.Time       `json:"last_batch"`
}

type UnpaidBatchRow struct {
	BatchID           uint            `json:"batch_id"`
	ProductID         uint            `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Category          string          `json:"category"`
	BatchCode         string          `json:"batch_code"`
	Quantity          int             `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	SupplierID        uint            `json:"supplier_id"`
	SupplierName      string          `json:"supplier_name"`
	SupplierInvoiceNo *string         `json:"supplier_invoice_no"`
	IsPaid            bool            `json:"is_paid"`
	CreatedAt         time.Time       `json:"created_at"`
}
