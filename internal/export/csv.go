package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slices"

	"gitlab.com/yelinaung/expense-api/internal/models"
)

// CSVContentType is the MIME type of GenerateCSV output.
const CSVContentType = "text/csv; charset=utf-8"

var columns = []string{"Date", "Category", "Description", "Amount"}

// sortForExport returns a copy of expenses ordered by date, then creation
// time, then id. The order does not depend on the input order.
func sortForExport(expenses []models.Expense) []models.Expense {
	sorted := slices.Clone(expenses)
	slices.SortStableFunc(sorted, func(a, b models.Expense) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return sorted
}

func row(e *models.Expense) []string {
	return []string{
		e.Date.Format(models.DateLayout),
		string(e.Category),
		e.Description,
		e.Amount.StringFixed(2),
	}
}

// GenerateCSV renders expenses as CSV with a header row. An empty input
// produces the header only.
func GenerateCSV(expenses []models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	sorted := sortForExport(expenses)
	for i := range sorted {
		if err := writer.Write(row(&sorted[i])); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
