package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MinYear and MaxYear bound the four-digit years accepted for periods.
const (
	MinYear = 1000
	MaxYear = 9999
)

// ParseDate parses a calendar date in YYYY-MM-DD form. The result is at
// midnight UTC.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, NewValidationError(field, "is required")
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// ValidatePeriod checks a calendar month (1-12) and four-digit year.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return NewValidationError("month", "must be between 1 and 12")
	}
	if year < MinYear || year > MaxYear {
		return NewValidationError("year", "must be a 4-digit year")
	}
	return nil
}

// validateAmount rejects negative amounts and amounts that do not fit the
// two-decimal storage column once rounded.
func validateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return NewValidationError(field, "must not be negative")
	}
	if amount.Round(2).GreaterThan(MaxAmount) {
		return NewValidationError(field, "must be at most "+MaxAmount.StringFixed(2))
	}
	return nil
}

// validateText rejects invalid UTF-8 and control characters other than
// tab and line breaks.
func validateText(field, s string) error {
	if !utf8.ValidString(s) {
		return NewValidationError(field, "must be valid UTF-8")
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return NewValidationError(field, "must not contain control characters")
		}
	}
	return nil
}

// Validate checks the mutable fields of an expense and normalizes the
// description in place.
func (e *Expense) Validate() error {
	if err := validateAmount("amount", e.Amount); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return NewValidationError("category", fmt.Sprintf("unknown category %q", string(e.Category)))
	}
	e.Description = strings.TrimSpace(e.Description)
	if e.Description == "" {
		return NewValidationError("description", "is required")
	}
	if utf8.RuneCountInString(e.Description) > MaxDescriptionLength {
		return NewValidationError("description", fmt.Sprintf("must be at most %d characters", MaxDescriptionLength))
	}
	if err := validateText("description", e.Description); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	return nil
}

// Validate checks a budget's category, limit and period.
func (b *Budget) Validate() error {
	if !b.Category.Valid() {
		return NewValidationError("category", fmt.Sprintf("unknown category %q", string(b.Category)))
	}
	if err := validateAmount("monthly_limit", b.MonthlyLimit); err != nil {
		return err
	}
	return ValidatePeriod(b.Month, b.Year)
}
