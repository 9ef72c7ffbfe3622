package export

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestGenerateXLSX(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields header only", func(t *testing.T) {
		t.Parallel()

		data, err := GenerateXLSX(nil)
		require.NoError(t, err)

		f := openWorkbook(t, data)
		require.Equal(t, []string{SheetName}, f.GetSheetList())

		rows, err := f.GetRows(SheetName)
		require.NoError(t, err)
		require.Equal(t, [][]string{{"Date", "Category", "Description", "Amount"}}, rows)
	})

	t.Run("matches CSV columns and order", func(t *testing.T) {
		t.Parallel()

		expenses := []models.Expense{
			testExpense("20.00", models.CategoryTransport, "2024-03-15", "Taxi, late"),
			testExpense("10.00", models.CategoryFood, "2024-03-05", "Lunch"),
		}
		data, err := GenerateXLSX(expenses)
		require.NoError(t, err)

		f := openWorkbook(t, data)
		rows, err := f.GetRows(SheetName)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, []string{"2024-03-05", "Food", "Lunch"}, rows[1][:3])
		require.Equal(t, []string{"2024-03-15", "Transport", "Taxi, late"}, rows[2][:3])
	})

	t.Run("amount is a numeric cell", func(t *testing.T) {
		t.Parallel()

		data, err := GenerateXLSX([]models.Expense{
			testExpense("5.5", models.CategoryFood, "2024-04-01", "Coffee"),
		})
		require.NoError(t, err)

		f := openWorkbook(t, data)
		raw, err := f.GetCellValue(SheetName, "D2", excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		amount, err := strconv.ParseFloat(raw, 64)
		require.NoError(t, err)
		require.InDelta(t, 5.5, amount, 0.0001)

		cellType, err := f.GetCellType(SheetName, "D2")
		require.NoError(t, err)
		require.NotEqual(t, excelize.CellTypeSharedString, cellType)
		require.NotEqual(t, excelize.CellTypeInlineString, cellType)
	})
}
