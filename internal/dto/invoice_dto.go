package dto

import (
	"github.com/shopspring/decimal"

	"github.com/diyath7/small-shop-system/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type InvoiceItemRequest struct {
	ProductID uint            `json:"product_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity"   validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

type CreateInvoiceRequest struct {
	// CustomerName defaults to the walk-in placeholder when empty.
	CustomerName string `json:"customer_name"`
	// InvoiceDate is a calendar day; nil means today. Future days are rejected.
	InvoiceDate *model.Date          `json:"invoice_date"`
	Discount    decimal.Decimal      `json:"discount" validate:"min=0"`
	Items       []InvoiceItemRequest `json:"items"    validate:"required,min=1,dive"`
}

// ─── Filters ─────────────────────────────────────────────────────────────────

// InvoiceFilter is bound from the query string of GET /v1/invoices.
type InvoiceFilter struct {
	Date string `form:"date"` // YYYY-MM-DD; empty = all
}

// InvoiceRangeFilter is bound from GET /v1/invoices/range.
type InvoiceRangeFilter struct {
	From string `form:"from"` // YYYY-MM-DD inclusive
	To   string `form:"to"`   // YYYY-MM-DD inclusive
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// InvoiceResponse is the header returned by POST /v1/invoices and list
// endpoints. Lines are fetched separately via GET /v1/invoices/:id.
type InvoiceResponse struct {
	ID            uint            `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   model.Date      `json:"invoice_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
}

// InvoiceListItem mirrors the persisted header: list and detail endpoints do
// not recompute the subtotal, they report what was committed.
type InvoiceListItem struct {
	ID            uint            `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   model.Date      `json:"invoice_date"`
	Discount      decimal.Decimal `json:"discount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
}

type InvoiceLineResponse struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type InvoiceDetailResponse struct {
	Invoice InvoiceListItem       `json:"invoice"`
	Items   []InvoiceLineResponse `json:"items"`
}
