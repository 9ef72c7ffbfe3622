// Package models defines the domain entities for the expense tracker.
package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format for expense dates.
const DateLayout = "2006-01-02"

// MonthLayout is the year-month key used by the monthly trend.
const MonthLayout = "2006-01"

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 500

// MaxAmount is the largest amount a NUMERIC(12,2) column holds. It bounds
// expense amounts and budget limits.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// CategoryFilterAll is the list filter value meaning "every category".
// It is never a valid category for a record.
const CategoryFilterAll = "All"

// Category is one of the closed set of expense categories.
type Category string

// Expense categories. The set is shared with clients and closed.
const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryBills         Category = "Bills"
	CategoryRent          Category = "Rent"
	CategoryOthers        Category = "Others"
)

var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryBills,
	CategoryRent,
	CategoryOthers,
}

// Categories returns the canonical category enumeration in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// CategoryNames returns the canonical categories as plain strings.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return names
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	return slices.Contains(categories, c)
}

// ParseCategory matches s against the category set, ignoring case and
// surrounding whitespace, and returns the canonical spelling.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Expense represents a single expense entry owned by one user.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    Category
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MonthKey returns the "YYYY-MM" month the expense falls in.
func (e *Expense) MonthKey() string {
	return e.Date.Format(MonthLayout)
}

// ExpenseFilter narrows an expense listing. Zero values mean "no filter".
type ExpenseFilter struct {
	Category  Category
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// Budget is a monthly spending limit for one category.
type Budget struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Category     Category
	MonthlyLimit decimal.Decimal
	Month        int
	Year         int
}
