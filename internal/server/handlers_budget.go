package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleUpsertBudget(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req budgetRequest
	if !bindJSON(c, &req) {
		return
	}

	budget, err := req.toBudget()
	if err != nil {
		respondError(c, err, "")
		return
	}
	budget.UserID = session.UserID

	if err := s.deps.Budgets.Upsert(c.Request.Context(), &budget); err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, newBudgetResponse(&budget))
}

func (s *Server) handleListBudgets(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	budgets, err := s.deps.Budgets.ListByUser(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err, "")
		return
	}

	out := make([]budgetResponse, len(budgets))
	for i := range budgets {
		out[i] = newBudgetResponse(&budgets[i])
	}
	c.JSON(http.StatusOK, out)
}
