package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/agrogreen/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "10012026_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.InspectionRecord{}, &models.StockMovement{},
					&models.Bank{}, &models.Client{}, &models.AgrogreenPolicy{}, &models.Notification{})
			},
		},
		{
			ID: "18022026_backfill_inspection_status",
			Migrate: func(tx *gorm.DB) error {
				// Legacy rows imported without a status are pending by definition.
				return tx.Exec("UPDATE inspections SET status = 'pending' WHERE status IS NULL OR status = ''").Error
			},
		},
		{
			ID: "18022026_backfill_inspection_version",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("UPDATE inspections SET version = 1 WHERE version IS NULL OR version = 0").Error
			},
		},
		{
			ID: "03032026_index_inward_insurance_lookup",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_inwards_insurance_lookup ON inwards(insurance_id, insurance_taken_by)").Error
			},
		},
	})
	return m.Migrate()
}
