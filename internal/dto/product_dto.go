package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	Category     string          `json:"category"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"min=0"`
	ReorderLevel int             `json:"reorder_level" validate:"min=0"`
	SupplierID   *uint           `json:"supplier_id" validate:"omitempty,gt=0"`
}

// UpdateProductRequest replaces the mutable attributes; identity is fixed.
type UpdateProductRequest = CreateProductRequest

type ProductResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int             `json:"reorder_level"`
	SupplierID   *uint           `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
}
