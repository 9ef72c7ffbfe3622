package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gitlab.com/yelinaung/expense-api/internal/logger"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

const msgExpenseNotFound = "Expense not found"

// expenseID parses the :id path parameter. Malformed ids cannot name an
// existing expense, so they answer 404.
func expenseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithDetail(c, http.StatusNotFound, msgExpenseNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// parseExpenseFilter reads the category, start_date and end_date query
// parameters. A missing category or "All" means every category.
func parseExpenseFilter(c *gin.Context) (models.ExpenseFilter, error) {
	var filter models.ExpenseFilter

	if raw := strings.TrimSpace(c.Query("category")); raw != "" && !strings.EqualFold(raw, models.CategoryFilterAll) {
		category, ok := models.ParseCategory(raw)
		if !ok {
			return filter, models.NewValidationError("category", "must be one of "+strings.Join(models.CategoryNames(), ", "))
		}
		filter.Category = category
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		return filter, err
	}
	filter.StartDate, filter.EndDate = start, end
	return filter, nil
}

func (s *Server) handleCreateExpense(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req expenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense := models.Expense{UserID: session.UserID}
	if err := req.apply(&expense); err != nil {
		respondError(c, err, "")
		return
	}

	if err := s.deps.Expenses.Create(c.Request.Context(), &expense); err != nil {
		respondError(c, err, "")
		return
	}

	s.metrics.expenseCreated(c.Request.Context(), string(expense.Category))
	logger.Log.Debug().
		Str("user_hash", logger.HashUserID(session.UserID)).
		Str("category", string(expense.Category)).
		Str("description", logger.SanitizeDescription(expense.Description)).
		Msg("Expense created")

	c.JSON(http.StatusCreated, newExpenseResponse(&expense))
}

func (s *Server) handleListExpenses(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	expenses, err := s.deps.Expenses.List(c.Request.Context(), session.UserID, filter)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, newExpenseList(expenses))
}

func (s *Server) handleGetExpense(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	id, ok := expenseID(c)
	if !ok {
		return
	}

	expense, err := s.deps.Expenses.GetByID(c.Request.Context(), session.UserID, id)
	if err != nil {
		respondError(c, err, msgExpenseNotFound)
		return
	}
	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

func (s *Server) handleUpdateExpense(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	id, ok := expenseID(c)
	if !ok {
		return
	}

	var req expenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense := models.Expense{ID: id, UserID: session.UserID}
	if err := req.apply(&expense); err != nil {
		respondError(c, err, "")
		return
	}

	if err := s.deps.Expenses.Update(c.Request.Context(), &expense); err != nil {
		respondError(c, err, msgExpenseNotFound)
		return
	}
	c.JSON(http.StatusOK, newExpenseResponse(&expense))
}

func (s *Server) handleDeleteExpense(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	id, ok := expenseID(c)
	if !ok {
		return
	}

	if err := s.deps.Expenses.Delete(c.Request.Context(), session.UserID, id); err != nil {
		respondError(c, err, msgExpenseNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
