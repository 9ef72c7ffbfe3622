package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gitlab.com/yelinaung/expense-api/internal/gemini"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ExpenseStore persists expenses. Every method is scoped to one owner.
type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]models.Expense, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]models.Expense, error)
	ListByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// BudgetStore persists monthly budgets.
type BudgetStore interface {
	Upsert(ctx context.Context, budget *models.Budget) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error)
}

// CategorySuggester proposes a category for a free-text description.
type CategorySuggester interface {
	SuggestCategory(ctx context.Context, description string, categories []models.Category) (*gemini.CategorySuggestion, error)
}
