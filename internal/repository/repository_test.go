package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-api/internal/database"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

func createTestUser(t *testing.T, db database.PGXDB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	require.NoError(t, err)
	return d
}

func createTestExpense(t *testing.T, repo *ExpenseRepository, user *models.User, amount string, cat models.Category, date string) *models.Expense {
	t.Helper()
	exp := &models.Expense{
		UserID:      user.ID,
		Amount:      decimal.RequireFromString(amount),
		Category:    cat,
		Description: string(cat) + " on " + date,
		Date:        mustDate(t, date),
	}
	require.NoError(t, repo.Create(context.Background(), exp))
	return exp
}
