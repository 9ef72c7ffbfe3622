// Package analytics computes derived views over a user's expenses.
package analytics

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

// CategoryTotal is the spending aggregated for one category.
type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
	Count    int
}

// MonthlyAmount is the spending aggregated for one calendar month.
type MonthlyAmount struct {
	Month  string // YYYY-MM
	Amount decimal.Decimal
}

// Summary is the analytics view over a set of expenses.
type Summary struct {
	TotalExpenses decimal.Decimal
	ExpenseCount  int
	Categories    []CategoryTotal
	MonthlyTrend  []MonthlyAmount
}

// Summarize aggregates expenses belonging to one user. Categories appear in
// first-seen order; the monthly trend is ascending by month. Empty input
// yields zero totals and empty, non-nil slices.
func Summarize(expenses []models.Expense) Summary {
	summary := Summary{
		TotalExpenses: decimal.Zero,
		ExpenseCount:  len(expenses),
		Categories:    []CategoryTotal{},
		MonthlyTrend:  []MonthlyAmount{},
	}

	categoryIndex := make(map[models.Category]int)
	monthIndex := make(map[string]int)

	for i := range expenses {
		exp := &expenses[i]
		summary.TotalExpenses = summary.TotalExpenses.Add(exp.Amount)

		idx, ok := categoryIndex[exp.Category]
		if !ok {
			idx = len(summary.Categories)
			categoryIndex[exp.Category] = idx
			summary.Categories = append(summary.Categories, CategoryTotal{
				Category: exp.Category,
				Total:    decimal.Zero,
			})
		}
		summary.Categories[idx].Total = summary.Categories[idx].Total.Add(exp.Amount)
		summary.Categories[idx].Count++

		month := exp.MonthKey()
		idx, ok = monthIndex[month]
		if !ok {
			idx = len(summary.MonthlyTrend)
			monthIndex[month] = idx
			summary.MonthlyTrend = append(summary.MonthlyTrend, MonthlyAmount{
				Month:  month,
				Amount: decimal.Zero,
			})
		}
		summary.MonthlyTrend[idx].Amount = summary.MonthlyTrend[idx].Amount.Add(exp.Amount)
	}

	// YYYY-MM keys sort chronologically as strings.
	slices.SortFunc(summary.MonthlyTrend, func(a, b MonthlyAmount) int {
		return strings.Compare(a.Month, b.Month)
	})

	return summary
}
