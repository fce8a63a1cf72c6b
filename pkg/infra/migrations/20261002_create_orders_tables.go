package migrations

import (
	"github.com/NeuralTrust/SpamShield/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20261002_create_orders_tables",
		Name: "Create orders and order_history tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS orders (
					id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					customer_email TEXT NOT NULL,
					first_name     TEXT NOT NULL DEFAULT '',
					last_name      TEXT NOT NULL DEFAULT '',
					note           TEXT NOT NULL DEFAULT '',
					current_state  TEXT,
					created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS order_history (
					id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					order_id   UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
					state      TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_order_history_order_id
				ON order_history (order_id);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP TABLE IF EXISTS order_history;`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP TABLE IF EXISTS orders;`).Error
		},
	})
}
