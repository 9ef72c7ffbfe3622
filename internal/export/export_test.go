package export

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

func testExpense(amount string, category models.Category, date, description string) models.Expense {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return models.Expense{
		ID:          uuid.New(),
		UserID:      uuid.Nil,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: description,
		Date:        d,
		CreatedAt:   d.Add(12 * time.Hour),
	}
}

// sampleExpenses mirrors the documented March/April example.
func sampleExpenses() []models.Expense {
	return []models.Expense{
		testExpense("10.00", models.CategoryFood, "2024-03-05", "Lunch"),
		testExpense("20.00", models.CategoryTransport, "2024-03-15", "Taxi"),
		testExpense("5.50", models.CategoryFood, "2024-04-01", "Coffee"),
	}
}

func timeStep(i int) time.Duration {
	return time.Duration(i) * time.Second
}
