package infra

import (
	"fmt"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial unique indexes).
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.StockMovement{},
		&model.Customer{},
		&model.SalonService{},
		&model.Bill{},
		&model.BillItem{},
		&model.Payment{},
		&model.Expense{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
// The idempotency-key uniqueness must ignore NULLs-per-salon, so both indexes
// are partial.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_payments_idempotency') THEN
		    CREATE UNIQUE INDEX idx_payments_idempotency
		        ON payments (salon_id, idempotency_key)
		        WHERE idempotency_key IS NOT NULL;
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stock_movements_idempotency') THEN
		    CREATE UNIQUE INDEX idx_stock_movements_idempotency
		        ON stock_movements (salon_id, idempotency_key)
		        WHERE idempotency_key IS NOT NULL;
		  END IF;
		END $$`,
		// the reconcile cron scans per-salon ledgers; keep that cheap
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stock_movements_salon_product') THEN
		    CREATE INDEX idx_stock_movements_salon_product
		        ON stock_movements (salon_id, product_id);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
