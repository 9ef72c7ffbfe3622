package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/yelinaung/expense-api/internal/analytics"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

// parseDateRange reads the optional start_date and end_date query values.
func parseDateRange(c *gin.Context) (start, end *time.Time, err error) {
	if raw := c.Query("start_date"); raw != "" {
		d, err := models.ParseDate("start_date", raw)
		if err != nil {
			return nil, nil, err
		}
		start = &d
	}
	if raw := c.Query("end_date"); raw != "" {
		d, err := models.ParseDate("end_date", raw)
		if err != nil {
			return nil, nil, err
		}
		end = &d
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, models.NewValidationError("start_date", "must not be after end_date")
	}
	return start, end, nil
}

var (
	rangeFloor   = time.Date(models.MinYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	rangeCeiling = time.Date(models.MaxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
)

func (s *Server) handleSummary(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	var expenses []models.Expense
	if start == nil && end == nil {
		expenses, err = s.deps.Expenses.ListAll(c.Request.Context(), session.UserID)
	} else {
		from, to := rangeFloor, rangeCeiling
		if start != nil {
			from = *start
		}
		if end != nil {
			to = *end
		}
		expenses, err = s.deps.Expenses.ListByDateRange(c.Request.Context(), session.UserID, from, to)
	}
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, newSummaryResponse(analytics.Summarize(expenses)))
}
