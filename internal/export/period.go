// Package export renders one month of a user's expenses as downloadable files.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/yelinaung/expense-api/internal/models"
)

// Period is a calendar month of a given year.
type Period struct {
	Month int
	Year  int
}

// parseDigits parses an unsigned decimal number. Signs, spaces inside the
// value and other non-digit input are rejected.
func parseDigits(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePeriod parses the month and year query values of an export request.
// Both must be plain digits.
func ParsePeriod(month, year string) (Period, error) {
	m, ok := parseDigits(month)
	if !ok {
		return Period{}, models.NewValidationError("month", "must be between 1 and 12")
	}
	y, ok := parseDigits(year)
	if !ok {
		return Period{}, models.NewValidationError("year", "must be a 4-digit year")
	}
	if err := models.ValidatePeriod(m, y); err != nil {
		return Period{}, err
	}
	return Period{Month: m, Year: y}, nil
}

// Contains reports whether the expense date falls within the period.
func (p Period) Contains(e *models.Expense) bool {
	return e.Date.Year() == p.Year && int(e.Date.Month()) == p.Month
}

// FilterByPeriod returns the expenses dated within p, preserving input order.
func FilterByPeriod(expenses []models.Expense, p Period) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for i := range expenses {
		if p.Contains(&expenses[i]) {
			out = append(out, expenses[i])
		}
	}
	return out
}

// Filename returns the download name for an export, e.g. expenses_2024_03.csv.
func Filename(p Period, ext string) string {
	return fmt.Sprintf("expenses_%d_%02d.%s", p.Year, p.Month, strings.TrimPrefix(ext, "."))
}
