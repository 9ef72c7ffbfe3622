package server

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-api/internal/analytics"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

// money renders a decimal as a JSON number with two decimal places.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type expenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

// apply validates the request and copies it onto e.
func (r *expenseRequest) apply(e *models.Expense) error {
	if r.Amount == nil {
		return models.NewValidationError("amount", "is required")
	}
	category, ok := models.ParseCategory(r.Category)
	if !ok {
		return models.NewValidationError("category", "must be one of "+strings.Join(models.CategoryNames(), ", "))
	}
	date, err := models.ParseDate("date", r.Date)
	if err != nil {
		return err
	}

	e.Amount = *r.Amount
	e.Category = category
	e.Description = r.Description
	e.Date = date
	return e.Validate()
}

type budgetRequest struct {
	Category     string           `json:"category"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit"`
	Month        int              `json:"month"`
	Year         int              `json:"year"`
}

func (r *budgetRequest) toBudget() (models.Budget, error) {
	if r.MonthlyLimit == nil {
		return models.Budget{}, models.NewValidationError("monthly_limit", "is required")
	}
	category, ok := models.ParseCategory(r.Category)
	if !ok {
		return models.Budget{}, models.NewValidationError("category", "must be one of "+strings.Join(models.CategoryNames(), ", "))
	}
	b := models.Budget{
		Category:     category,
		MonthlyLimit: *r.MonthlyLimit,
		Month:        r.Month,
		Year:         r.Year,
	}
	return b, b.Validate()
}

type suggestRequest struct {
	Description string `json:"description"`
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      json.Number     `json:"amount"`
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

func newExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		Amount:      money(e.Amount),
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.Format(models.DateLayout),
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func newExpenseList(expenses []models.Expense) []expenseResponse {
	out := make([]expenseResponse, len(expenses))
	for i := range expenses {
		out[i] = newExpenseResponse(&expenses[i])
	}
	return out
}

type budgetResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Category     models.Category `json:"category"`
	MonthlyLimit json.Number     `json:"monthly_limit"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
}

func newBudgetResponse(b *models.Budget) budgetResponse {
	return budgetResponse{
		ID:           b.ID.String(),
		UserID:       b.UserID.String(),
		Category:     b.Category,
		MonthlyLimit: money(b.MonthlyLimit),
		Month:        b.Month,
		Year:         b.Year,
	}
}

type categoryTotalResponse struct {
	Category models.Category `json:"category"`
	Total    json.Number     `json:"total"`
	Count    int             `json:"count"`
}

type monthlyAmountResponse struct {
	Month  string      `json:"month"`
	Amount json.Number `json:"amount"`
}

type summaryResponse struct {
	TotalExpenses json.Number             `json:"total_expenses"`
	ExpenseCount  int                     `json:"expense_count"`
	Categories    []categoryTotalResponse `json:"categories"`
	MonthlyTrend  []monthlyAmountResponse `json:"monthly_trend"`
}

func newSummaryResponse(s analytics.Summary) summaryResponse {
	resp := summaryResponse{
		TotalExpenses: money(s.TotalExpenses),
		ExpenseCount:  s.ExpenseCount,
		Categories:    make([]categoryTotalResponse, len(s.Categories)),
		MonthlyTrend:  make([]monthlyAmountResponse, len(s.MonthlyTrend)),
	}
	for i, c := range s.Categories {
		resp.Categories[i] = categoryTotalResponse{Category: c.Category, Total: money(c.Total), Count: c.Count}
	}
	for i, m := range s.MonthlyTrend {
		resp.MonthlyTrend[i] = monthlyAmountResponse{Month: m.Month, Amount: money(m.Amount)}
	}
	return resp
}
