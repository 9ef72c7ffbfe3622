package export

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		month     string
		year      string
		want      Period
		wantField string
	}{
		{name: "valid", month: "3", year: "2024", want: Period{Month: 3, Year: 2024}},
		{name: "zero padded month", month: "03", year: "2024", want: Period{Month: 3, Year: 2024}},
		{name: "surrounding whitespace", month: " 12 ", year: " 1999 ", want: Period{Month: 12, Year: 1999}},
		{name: "month thirteen", month: "13", year: "2024", wantField: "month"},
		{name: "month zero", month: "0", year: "2024", wantField: "month"},
		{name: "month not a number", month: "March", year: "2024", wantField: "month"},
		{name: "month missing", month: "", year: "2024", wantField: "month"},
		{name: "two digit year", month: "3", year: "24", wantField: "year"},
		{name: "five digit year", month: "3", year: "20240", wantField: "year"},
		{name: "year not a number", month: "3", year: "twenty", wantField: "year"},
		{name: "year missing", month: "3", year: "", wantField: "year"},
		{name: "signed year", month: "3", year: "+2024", wantField: "year"},
		{name: "negative year", month: "3", year: "-2024", wantField: "year"},
		{name: "signed month", month: "+3", year: "2024", wantField: "month"},
		{name: "inner space", month: "1 2", year: "2024", wantField: "month"},
		{name: "fullwidth digits", month: "3", year: "２０２４", wantField: "year"},
		{name: "overflowing digits", month: "99999999999999999999", year: "2024", wantField: "month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePeriod(tt.month, tt.year)
			if tt.wantField == "" {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.wantField, ve.Field)
			require.Equal(t, Period{}, got)
		})
	}
}

func TestFilterByPeriod(t *testing.T) {
	t.Parallel()

	t.Run("keeps only records in the month", func(t *testing.T) {
		t.Parallel()

		expenses := sampleExpenses()
		got := FilterByPeriod(expenses, Period{Month: 3, Year: 2024})
		require.Len(t, got, 2)
		require.Equal(t, "Lunch", got[0].Description)
		require.Equal(t, "Taxi", got[1].Description)
	})

	t.Run("same month in another year is excluded", func(t *testing.T) {
		t.Parallel()

		expenses := []models.Expense{
			testExpense("1", models.CategoryFood, "2023-03-05", "last year"),
			testExpense("1", models.CategoryFood, "2024-03-31", "month end"),
			testExpense("1", models.CategoryFood, "2024-03-01", "month start"),
		}
		got := FilterByPeriod(expenses, Period{Month: 3, Year: 2024})
		require.Len(t, got, 2)
		require.Equal(t, "month end", got[0].Description)
		require.Equal(t, "month start", got[1].Description)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		t.Parallel()

		got := FilterByPeriod(sampleExpenses(), Period{Month: 1, Year: 2020})
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}

func TestFilename(t *testing.T) {
	t.Parallel()

	require.Equal(t, "expenses_2024_03.csv", Filename(Period{Month: 3, Year: 2024}, "csv"))
	require.Equal(t, "expenses_2024_12.xlsx", Filename(Period{Month: 12, Year: 2024}, ".xlsx"))
}
