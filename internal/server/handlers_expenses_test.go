package server

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

func TestCreateExpense(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.register(t, "create@example.com")

	t.Run("stores and echoes the expense", func(t *testing.T) {
		t.Parallel()
		rec := env.do(t, http.MethodPost, "/api/expenses",
			`{"amount": 12.5, "category": "Food", "description": "  Lunch  ", "date": "2024-03-05"}`, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		resp := decode[expenseResponse](t, rec)
		require.NotEmpty(t, resp.ID)
		require.Equal(t, "12.50", resp.Amount.String())
		require.Equal(t, models.CategoryFood, resp.Category)
		require.Equal(t, "Lunch", resp.Description)
		require.Equal(t, "2024-03-05", resp.Date)
	})

	t.Run("accepts case-insensitive category", func(t *testing.T) {
		t.Parallel()
		rec := env.do(t, http.MethodPost, "/api/expenses",
			`{"amount": 1, "category": "transport", "description": "bus", "date": "2024-03-05"}`, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.Equal(t, models.CategoryTransport, decode[expenseResponse](t, rec).Category)
	})

	for name, body := range map[string]string{
		"negative amount":   `{"amount": -1, "category": "Food", "description": "x", "date": "2024-03-05"}`,
		"missing amount":    `{"category": "Food", "description": "x", "date": "2024-03-05"}`,
		"unknown category":  `{"amount": 1, "category": "Travel", "description": "x", "date": "2024-03-05"}`,
		"blank description": `{"amount": 1, "category": "Food", "description": "   ", "date": "2024-03-05"}`,
		"bad date":          `{"amount": 1, "category": "Food", "description": "x", "date": "05/03/2024"}`,
		"malformed json":    `{"amount": `,
		"amount too large":  `{"amount": 10000000000, "category": "Food", "description": "x", "date": "2024-03-05"}`,
		"NUL description":   `{"amount": 1, "category": "Food", "description": "a\u0000b", "date": "2024-03-05"}`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := env.do(t, http.MethodPost, "/api/expenses", body, token)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		rec := env.do(t, http.MethodPost, "/api/expenses",
			`{"amount": 1, "category": "Food", "description": "x", "date": "2024-03-05"}`, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestListExpenses(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.register(t, "list@example.com")
	other := env.register(t, "other@example.com")

	env.createExpense(t, token, "10.00", models.CategoryFood, "2024-03-05")
	env.createExpense(t, token, "20.00", models.CategoryTransport, "2024-03-15")
	env.createExpense(t, token, "5.50", models.CategoryFood, "2024-04-01")
	env.createExpense(t, other, "99.00", models.CategoryFood, "2024-03-10")

	list := func(t *testing.T, query string) []expenseResponse {
		t.Helper()
		rec := env.do(t, http.MethodGet, "/api/expenses"+query, nil, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[[]expenseResponse](t, rec)
	}

	t.Run("only the caller's expenses, newest first", func(t *testing.T) {
		t.Parallel()
		got := list(t, "")
		require.Len(t, got, 3)
		require.Equal(t, "2024-04-01", got[0].Date)
		require.Equal(t, "2024-03-05", got[2].Date)
	})

	t.Run("category filter", func(t *testing.T) {
		t.Parallel()
		got := list(t, "?category=Food")
		require.Len(t, got, 2)
		for _, e := range got {
			require.Equal(t, models.CategoryFood, e.Category)
		}
	})

	t.Run("All means no category filter", func(t *testing.T) {
		t.Parallel()
		require.Len(t, list(t, "?category=All"), 3)
	})

	t.Run("date range filter is inclusive", func(t *testing.T) {
		t.Parallel()
		got := list(t, "?start_date=2024-03-05&end_date=2024-03-15")
		require.Len(t, got, 2)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		t.Parallel()
		rec := env.do(t, http.MethodGet, "/api/expenses?category=Travel", nil, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		t.Parallel()
		rec := env.do(t, http.MethodGet, "/api/expenses?start_date=2024-04-01&end_date=2024-03-01", nil, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExpenseLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	intruder := env.register(t, "intruder@example.com")

	created := env.createExpense(t, owner, "10.00", models.CategoryFood, "2024-03-05")
	path := "/api/expenses/" + created.ID

	rec := env.do(t, http.MethodGet, path, nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, created.ID, decode[expenseResponse](t, rec).ID)

	// Another user's record looks exactly like a missing one.
	requireDetail(t, env.do(t, http.MethodGet, path, nil, intruder), http.StatusNotFound, msgExpenseNotFound)
	requireDetail(t, env.do(t, http.MethodPut, path,
		`{"amount": 1, "category": "Food", "description": "x", "date": "2024-03-05"}`, intruder),
		http.StatusNotFound, msgExpenseNotFound)
	requireDetail(t, env.do(t, http.MethodDelete, path, nil, intruder), http.StatusNotFound, msgExpenseNotFound)

	rec = env.do(t, http.MethodPut, path,
		`{"amount": 42.1, "category": "Bills", "description": "Power", "date": "2024-03-06"}`, owner)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[expenseResponse](t, rec)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "42.10", updated.Amount.String())
	require.Equal(t, models.CategoryBills, updated.Category)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = env.do(t, http.MethodDelete, path, nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Expense deleted successfully"}`, rec.Body.String())

	requireDetail(t, env.do(t, http.MethodGet, path, nil, owner), http.StatusNotFound, msgExpenseNotFound)
	requireDetail(t, env.do(t, http.MethodDelete, path, nil, owner), http.StatusNotFound, msgExpenseNotFound)
}

func TestExpenseID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.register(t, "ids@example.com")

	requireDetail(t, env.do(t, http.MethodGet, "/api/expenses/not-a-uuid", nil, token),
		http.StatusNotFound, msgExpenseNotFound)
	requireDetail(t, env.do(t, http.MethodGet, "/api/expenses/"+uuid.NewString(), nil, token),
		http.StatusNotFound, msgExpenseNotFound)
}
