package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gitlab.com/yelinaung/expense-api/internal/database"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

// DefaultListLimit caps List when the filter sets no limit.
const DefaultListLimit = 1000

const expenseColumns = `id, user_id, amount, category, description, expense_date, created_at, updated_at`

// ExpenseRepository handles expense database operations. Every query is
// scoped to the owning user.
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create adds a new expense and fills in its id and timestamps.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (user_id, amount, category, description, expense_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, expense.UserID, expense.Amount, string(expense.Category), expense.Description, expense.Date,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByID retrieves one of userID's expenses. Expenses owned by someone
// else are reported as models.ErrNotFound.
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses WHERE id = $1 AND user_id = $2
	`, id, userID)

	exp, err := scanExpense(row)
	if err != nil {
		return nil, notFound("failed to get expense", err)
	}
	return exp, nil
}

// List returns userID's expenses matching filter, newest first.
func (r *ExpenseRepository) List(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]models.Expense, error) {
	var (
		conds = []string{"user_id = $1"}
		args  = []any{userID}
	)
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("expense_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("expense_date <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	args = append(args, limit)

	rows, err := r.db.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY expense_date DESC, created_at DESC, id DESC
		LIMIT `+fmt.Sprintf("$%d", len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListAll returns every expense userID owns, oldest first. Used for
// analytics and exports.
func (r *ExpenseRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE user_id = $1
		ORDER BY expense_date, created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// ListByDateRange returns userID's expenses dated within [start, end], oldest first.
func (r *ExpenseRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date <= $3
		ORDER BY expense_date, created_at, id
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by date range: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// Update replaces the mutable fields of an expense owned by expense.UserID.
func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	err := r.db.QueryRow(ctx, `
		UPDATE expenses SET
			amount = $3,
			category = $4,
			description = $5,
			expense_date = $6,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`, expense.ID, expense.UserID, expense.Amount, string(expense.Category), expense.Description, expense.Date,
	).Scan(&expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return notFound("failed to update expense", err)
	}
	return nil
}

// Delete permanently removes one of userID's expenses.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete expense: %w", models.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		exp      models.Expense
		category string
	)
	if err := row.Scan(
		&exp.ID, &exp.UserID, &exp.Amount, &category, &exp.Description,
		&exp.Date, &exp.CreatedAt, &exp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	exp.Category = models.Category(category)
	return &exp, nil
}

func scanExpenses(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]models.Expense, error) {
	expenses := []models.Expense{}
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}
