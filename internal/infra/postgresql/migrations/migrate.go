package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "000001_create_customers",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&domain.Customer{}); err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_customers_status_created ON customers (status, created_at)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&domain.Customer{})
			},
		},
		{
			ID: "000002_create_transactions",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&domain.Transaction{}); err != nil {
					return err
				}
				indexes := []string{
					`CREATE INDEX IF NOT EXISTS idx_transactions_customer_created ON transactions (customer_id, created_at)`,
					`CREATE INDEX IF NOT EXISTS idx_transactions_type_created ON transactions (type, created_at)`,
				}
				for _, sql := range indexes {
					if err := tx.Exec(sql).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&domain.Transaction{})
			},
		},
		{
			ID: "000003_create_whatsapp_messages",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&domain.MessageRecord{}); err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_whatsapp_messages_customer_created ON whatsapp_messages (customer_id, created_at)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&domain.MessageRecord{})
			},
		},
	})

	return m.Migrate()
}
