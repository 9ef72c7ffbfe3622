package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/yelinaung/expense-api/internal/export"
	"gitlab.com/yelinaung/expense-api/internal/logger"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

type exportFormat struct {
	name        string
	ext         string
	contentType string
	generate    func([]models.Expense) ([]byte, error)
}

var (
	csvFormat = exportFormat{
		name:        "csv",
		ext:         "csv",
		contentType: export.CSVContentType,
		generate:    export.GenerateCSV,
	}
	xlsxFormat = exportFormat{
		name:        "xlsx",
		ext:         "xlsx",
		contentType: export.XLSXContentType,
		generate:    export.GenerateXLSX,
	}
)

func (s *Server) handleExportCSV(c *gin.Context) {
	s.exportMonth(c, csvFormat)
}

func (s *Server) handleExportXLSX(c *gin.Context) {
	s.exportMonth(c, xlsxFormat)
}

// exportMonth renders the caller's expenses for ?month=&year= as an
// attachment. Nothing is written before the period validates.
func (s *Server) exportMonth(c *gin.Context, format exportFormat) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	period, err := export.ParsePeriod(c.Query("month"), c.Query("year"))
	if err != nil {
		respondError(c, err, "")
		return
	}

	start := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	expenses, err := s.deps.Expenses.ListByDateRange(c.Request.Context(), session.UserID, start, end)
	if err != nil {
		respondError(c, err, "")
		return
	}

	data, err := format.generate(export.FilterByPeriod(expenses, period))
	if err != nil {
		respondError(c, fmt.Errorf("generate %s export: %w", format.name, err), "")
		return
	}

	s.metrics.exportGenerated(c.Request.Context(), format.name)
	logger.Log.Info().
		Str("user_hash", logger.HashUserID(session.UserID)).
		Str("format", format.name).
		Int("month", period.Month).
		Int("year", period.Year).
		Msg("Export generated")

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(period, format.ext)))
	c.Data(http.StatusOK, format.contentType, data)
}
