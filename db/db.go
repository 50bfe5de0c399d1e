package db

import (
	"fmt"

	"asset_circulation_engine/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Asset{},
		&models.Inspection{},
		&models.Assignment{},
		&models.BorrowTransaction{},
		&models.BorrowItem{},
		&models.ReturnTransaction{},
		&models.ReturnItem{},
		&models.SequenceCounter{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Outstanding-item checks scan open borrow lines only.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open
	  ON %s (borrow_transaction_id)
	  WHERE status = 'borrowed';
	`, models.BorrowItemTable, models.BorrowItemTable)).Error; err != nil {
		return err
	}

	// Latest-inspection lookup at checkout.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_asset_inspected_desc
	  ON %s (asset_id, inspected_at DESC);
	`, models.InspectionTable, models.InspectionTable)).Error; err != nil {
		return err
	}

	return nil
}
