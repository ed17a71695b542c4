package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockWriteOff records a loss event against one batch: quantity removed,
// valued at the batch's recorded cost — not the product's catalog price.
// Created only together with the matching batch decrement.
type StockWriteOff struct {
	ID           uint   `gorm:"primaryKey"`
	ProductID    uint   `gorm:"not null;index"`
	BatchID      uint   `gorm:"not null;index"`
	Quantity     int    `gorm:"not null"`
	Reason       string `gorm:"not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	WriteOffDate Date            `gorm:"type:date;not null"`
	CreatedBy    uint            `gorm:"not null"`
	Notes        *string
	CreatedAt    time.Time

	Product *Product    `gorm:"foreignKey:ProductID"`
	Batch   *StockBatch `gorm:"foreignKey:BatchID"`
	User    *User       `gorm:"foreignKey:CreatedBy"`
}

func (StockWriteOff) TableName() string { return "stock_write_offs" }
