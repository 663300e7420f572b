package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		phone VARCHAR(32) NOT NULL UNIQUE,
		full_name VARCHAR(100) NOT NULL,
		country VARCHAR(64) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS wallets (
		wallet_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		type VARCHAR(16) NOT NULL,
		address CHAR(42) NOT NULL UNIQUE,
		private_key TEXT NOT NULL,
		balance NUMERIC(36,18) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS wallets_one_daily_per_user
		ON wallets (user_id) WHERE type = 'daily';`,
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		from_user_id UUID NOT NULL REFERENCES users(user_id),
		to_user_id UUID NOT NULL REFERENCES users(user_id),
		amount NUMERIC(36,18) NOT NULL,
		type VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		metadata JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS transactions_from_user ON transactions (from_user_id);`,
	`CREATE INDEX IF NOT EXISTS transactions_to_user ON transactions (to_user_id);`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
