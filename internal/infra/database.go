package infra

import (
	"fmt"

	"github.com/diyath7/small-shop-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection with a bounded pool. Schema setup
// is a separate step (Migrate) so tests and tooling can control it.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// Migrate applies the schema. Also used by integration tests against a fresh
// database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Supplier{},
		&model.User{},
		&model.Product{},
		&model.StockBatch{},
		&model.Invoice{},
		&model.InvoiceLine{},
		&model.StockWriteOff{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Invoice numbers come from a dedicated sequence consumed inside the
	// invoice transaction, so concurrent creations can never mint duplicates.
	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS invoice_numbers_seq").Error; err != nil {
		return fmt.Errorf("invoice number sequence: %w", err)
	}
	return nil
}
