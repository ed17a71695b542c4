package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/diyath7/small-shop-system/internal/model"
)

type WriteOffRequest struct {
	BatchID  uint   `json:"batch_id" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason"` // defaults to EXPIRED
	Notes    *string `json:"notes"`
}

type WriteOffResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	BatchID      uint            `json:"batch_id"`
	BatchCode    string          `json:"batch_code,omitempty"`
	Quantity     int             `json:"quantity"`
	Reason       string          `json:"reason"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	WriteOffDate model.Date      `json:"write_off_date"`
	CreatedBy    string          `json:"created_by,omitempty"`
	Notes        *string         `json:"notes"`
}

// StockSummaryRow is one product in GET /v1/stock/summary.
type StockSummaryRow struct {
	ProductID     uint        `json:"product_id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	ReorderLevel  int         `json:"reorder_level"`
	TotalQuantity int         `json:"total_quantity"`
	BatchCount    int         `json:"batch_count"`
	NearestExpiry *model.Date `json:"nearest_expiry"`
	IsLowStock    bool        `json:"is_low_stock"`
}

// ExpiredBatchRow is a batch past its expiry date that still holds stock.
type ExpiredBatchRow struct {
	BatchID     uint            `json:"batch_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	BatchCode   string          `json:"batch_code"`
	Quantity    int             `json:"quantity"`
	ExpiryDate  *model.Date     `json:"expiry_date"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	CreatedAt   time.Time       `json:"created_at"`
}
