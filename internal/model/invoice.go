package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a sale header. It is created atomically with its lines and the
// matching batch deductions, or not at all.
type Invoice struct {
	ID            uint   `gorm:"primaryKey"`
	InvoiceNumber string `gorm:"uniqueIndex;not null"`
	CustomerName  string `gorm:"not null"`
	InvoiceDate   Date   `gorm:"type:date;not null;index"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status        string          `gorm:"not null;default:'PAID'"`
	CreatedAt     time.Time

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID"`
}

// InvoiceLine carries the requested quantity and the negotiated unit price.
// One line per product, never fragmented per batch. Immutable once created.
type InvoiceLine struct {
	ID        uint `gorm:"primaryKey"`
	InvoiceID uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null;index"`
	Quantity  int  `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
