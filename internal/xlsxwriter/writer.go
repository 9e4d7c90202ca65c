// =============================================================================
// BI Update - Tabular Writer
// =============================================================================
//
// This module writes a flat types.Table to a new single-sheet .xlsx workbook.
// The header goes to row 1 starting at A1 and data rows follow in order.
// Integer and Number cells are stored as numbers so BI tools can aggregate
// them; empty cells are left blank.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/biupdate/internal/types"
	"github.com/xuri/excelize/v2"
)

// Extension is appended to every output base name.
const Extension = ".xlsx"

// SheetName is the name of the single output sheet.
const SheetName = "Sheet"

// Write creates basePath + ".xlsx" holding the table.
//
// PARAMETERS:
//   - table: The flat table to write.
//   - basePath: The output path without extension.
//
// RETURNS:
//   - The path of the written workbook.
//   - An error if the workbook cannot be built or saved.
func Write(table *types.Table, basePath string) (string, error) {
	path := basePath + Extension
	if strings.HasSuffix(strings.ToLower(basePath), Extension) {
		path = basePath
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	rowNum := 1
	if len(table.Header) > 0 {
		header := make([]interface{}, len(table.Header))
		for i, label := range table.Header {
			header[i] = label
		}
		if err := setRow(f, rowNum, header); err != nil {
			return "", err
		}
		rowNum++
	}

	for _, row := range table.Rows {
		values := make([]interface{}, len(row))
		for i, cell := range row {
			values[i] = cell.Value()
		}
		if err := setRow(f, rowNum, values); err != nil {
			return "", err
		}
		rowNum++
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	return path, nil
}

func setRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
