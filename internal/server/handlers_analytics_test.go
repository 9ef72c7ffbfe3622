package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.register(t, "summary@example.com")
	seedExample(t, env, token)

	t.Run("aggregates all expenses", func(t *testing.T) {
		t.Parallel()
		rec := env.do(t, http.MethodGet, "/api/analytics/summary", nil, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.JSONEq(t, `{
			"total_expenses": 35.50,
			"expense_count": 3,
			"categories": [
				{"category": "Food", "total": 15.50, "count": 2},
				{"category": "Transport", "total": 20.00, "count": 1}
			],
			"monthly_trend": [
				{"month": "2024-03", "amount": 30.00},
				{"month": "2024-04", "amount": 5.50}
			]
		}`, rec.Body.String())
	})

	t.Run("restricts to date range", func(t *testing.T) {
		t.Parallel()
		rec := env.do(t, http.MethodGet, "/api/analytics/summary?start_date=2024-04-01", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[summaryResponse](t, rec)
		require.Equal(t, 1, resp.ExpenseCount)
		require.Equal(t, "5.50", resp.TotalExpenses.String())
	})

	t.Run("empty account", func(t *testing.T) {
		t.Parallel()
		fresh := env.register(t, "summary-empty@example.com")
		rec := env.do(t, http.MethodGet, "/api/analytics/summary", nil, fresh)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"total_expenses":0.00,"expense_count":0,"categories":[],"monthly_trend":[]}`, rec.Body.String())
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		t.Parallel()
		rec := env.do(t, http.MethodGet, "/api/analytics/summary?end_date=yesterday", nil, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
