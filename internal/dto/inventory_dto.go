package dto

import "github.com/diyath7/small-shop-system/internal/model"

// Stock status buckets for the inventory views.
const (
	StockStatusOK         = "OK"
	StockStatusLow        = "LOW_STOCK"
	StockStatusOutOfStock = "OUT_OF_STOCK"
)

// InventoryRow is one product in the full inventory view: total quantity
// across batches plus a derived status bucket.
type InventoryRow struct {
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	ReorderLevel  int    `json:"reorder_level"`
	TotalQuantity int    `json:"total_quantity"`
	StockStatus   string `json:"stock_status"`
}

// ExpiringFilter is bound from GET /v1/inventory/expiring.
type ExpiringFilter struct {
	Days int `form:"days,default=30" validate:"min=1,max=365"`
}

// ExpiringRow is a product whose nearest batch expiry falls within the window.
type ExpiringRow struct {
	ProductID     uint        `json:"product_id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	NearestExpiry *model.Date `json:"nearest_expiry"`
	TotalQuantity int         `json:"total_quantity"`
}
