package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch is one received lot of a product: its own expiry, cost and
// remaining quantity. Quantity only ever decreases after creation (sales,
// write-offs) and never below zero; an exhausted batch is kept for history.
type StockBatch struct {
	ID                uint  `gorm:"primaryKey"`
	ProductID         uint  `gorm:"not null;index"`
	BatchCode         string `gorm:"not null"`
	ExpiryDate        *Date
	Quantity          int             `gorm:"not null;check:quantity >= 0"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SupplierID        *uint           `gorm:"index"`
	SupplierInvoiceNo *string
	IsPaid            bool `gorm:"not null;default:false"`
	PaidAt            *time.Time
	CreatedAt         time.Time

	Product  *Product  `gorm:"foreignKey:ProductID"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

func (StockBatch) TableName() string { return "product_batches" }
