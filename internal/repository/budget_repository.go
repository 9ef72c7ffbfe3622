package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gitlab.com/yelinaung/expense-api/internal/database"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

// BudgetRepository handles budget database operations.
type BudgetRepository struct {
	db database.PGXDB
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(db database.PGXDB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert creates a budget or, when one exists for the same user, category
// and period, replaces its limit. The stored id is written back to budget.
func (r *BudgetRepository) Upsert(ctx context.Context, budget *models.Budget) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO budgets (user_id, category, monthly_limit, month, year)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category, month, year) DO UPDATE SET
			monthly_limit = EXCLUDED.monthly_limit,
			updated_at = NOW()
		RETURNING id
	`, budget.UserID, string(budget.Category), budget.MonthlyLimit, budget.Month, budget.Year,
	).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}

// ListByUser returns all of userID's budgets, most recent period first.
func (r *BudgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.user_id, b.category, b.monthly_limit, b.month, b.year
		FROM budgets b
		JOIN categories c ON c.name = b.category
		WHERE b.user_id = $1
		ORDER BY b.year DESC, b.month DESC, c.position
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var (
			b        models.Budget
			category string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &category, &b.MonthlyLimit, &b.Month, &b.Year); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Category = models.Category(category)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}
