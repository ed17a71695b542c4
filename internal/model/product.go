package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Physical stock lives in StockBatch rows, never
// here: a product's available quantity is always the sum of its batches.
type Product struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"index;not null"`
	Category     string          `gorm:"index"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReorderLevel int             `gorm:"not null;default:0"`
	SupplierID   *uint           `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}
