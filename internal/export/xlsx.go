package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"gitlab.com/yelinaung/expense-api/internal/models"
)

// XLSXContentType is the MIME type of GenerateXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the worksheet holding exported expenses.
const SheetName = "Expenses"

// amountFormat is the built-in "0.00" number format.
const amountFormat = 2

var columnWidths = []float64{12, 15, 40, 12}

// GenerateXLSX renders expenses as a single-sheet workbook with the same
// columns and row order as GenerateCSV. Amounts are numeric cells.
func GenerateXLSX(expenses []models.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, title := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		col, _, err := excelize.SplitCellName(cell)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve column: %w", err)
		}
		if err := f.SetColWidth(SheetName, col, col, columnWidths[i]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}

	sorted := sortForExport(expenses)
	for i := range sorted {
		if err := writeXLSXRow(f, i+2, &sorted[i], amountStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSXRow(f *excelize.File, rowNum int, e *models.Expense, amountStyle int) error {
	values := []string{
		e.Date.Format(models.DateLayout),
		string(e.Category),
		e.Description,
	}
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
	}

	cell, err := excelize.CoordinatesToCellName(len(values)+1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	amount, _ := e.Amount.Float64()
	if err := f.SetCellFloat(SheetName, cell, amount, 2, 64); err != nil {
		return fmt.Errorf("failed to write amount on row %d: %w", rowNum, err)
	}
	if err := f.SetCellStyle(SheetName, cell, cell, amountStyle); err != nil {
		return fmt.Errorf("failed to style amount on row %d: %w", rowNum, err)
	}
	return nil
}
