package database

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/expense-api/internal/models"
)

// RunMigrations creates the database schema. Every statement is idempotent.
func RunMigrations(ctx context.Context, db PGXDB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))`,

		`CREATE TABLE IF NOT EXISTS categories (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			amount NUMERIC(12, 2) NOT NULL CHECK (amount >= 0),
			category TEXT NOT NULL REFERENCES categories(name),
			description TEXT NOT NULL,
			expense_date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, expense_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_category ON expenses(user_id, category)`,

		`CREATE TABLE IF NOT EXISTS budgets (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category TEXT NOT NULL REFERENCES categories(name),
			monthly_limit NUMERIC(12, 2) NOT NULL CHECK (monthly_limit >= 0),
			month SMALLINT NOT NULL CHECK (month BETWEEN 1 AND 12),
			year SMALLINT NOT NULL CHECK (year BETWEEN 1000 AND 9999),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, category, month, year)
		)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// SeedCategories inserts the closed category set in display order.
func SeedCategories(ctx context.Context, db PGXDB) error {
	for i, cat := range models.Categories() {
		_, err := db.Exec(ctx, `
			INSERT INTO categories (name, position) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET position = EXCLUDED.position
		`, string(cat), i)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat, err)
		}
	}

	return nil
}
