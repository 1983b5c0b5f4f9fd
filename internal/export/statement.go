// Package export renders penalty statements as Excel workbooks for
// contractor billing.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nasserq/raqeeb"
)

const sheetName = "Penalty Statement"

// StatementWorkbook renders a statement into an xlsx workbook and
// returns the serialized bytes.
func StatementWorkbook(stmt *raqeeb.GlobalPenaltyStatement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	// Header block
	f.SetCellValue(sheetName, "A1", "Global Penalty Statement")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetCellValue(sheetName, "A2", "Reference")
	f.SetCellValue(sheetName, "B2", stmt.ReferenceNumber)
	f.SetCellValue(sheetName, "A3", "Period")
	f.SetCellValue(sheetName, "B3", fmt.Sprintf("%s %d", stmt.Month, stmt.Year))
	f.SetCellValue(sheetName, "A4", "Contractor")
	f.SetCellValue(sheetName, "B4", stmt.ContractorName)
	f.SetCellValue(sheetName, "A5", "Status")
	f.SetCellValue(sheetName, "B5", string(stmt.Status))

	// Column headers
	const headerRow = 7
	headers := []string{"Violation", "Category", "Occurrences", "Penalty Per Occurrence", "Total", "Status", "Manager Notes"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A7", "G7", headerStyle)

	// Item rows
	row := headerRow + 1
	for _, item := range stmt.Items {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.ViolationName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), item.OccurrenceCount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), item.PenaltyPerOccurrence)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), item.Total)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), string(item.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), item.ManagerNotes)
		f.SetCellStyle(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row), moneyStyle)
		row++
	}

	// Summary block
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total violations")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), stmt.TotalViolations)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total invoices")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), stmt.TotalInvoices)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total amount")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), stmt.TotalAmount)
	f.SetCellStyle(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), moneyStyle)

	if stmt.ManagerComment != "" {
		row += 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Manager comment")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), stmt.ManagerComment)
	}

	// Readable column widths
	f.SetColWidth(sheetName, "A", "A", 42)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "E", 16)
	f.SetColWidth(sheetName, "F", "F", 12)
	f.SetColWidth(sheetName, "G", "G", 36)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// StatementFilename returns the download filename for a statement.
func StatementFilename(stmt *raqeeb.GlobalPenaltyStatement) string {
	return fmt.Sprintf("penalty-statement-%04d-%02d.xlsx", stmt.Year, int(stmt.Month))
}
