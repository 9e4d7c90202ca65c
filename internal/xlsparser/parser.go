// =============================================================================
// BI Update - Tabular Reader
// =============================================================================
//
// This module loads the first sheet of a report export into a types.Grid.
// The point-of-sale tool exports legacy Excel 97-2003 workbooks (.xls); newer
// .xlsx workbooks and .csv re-exports are accepted too.
//
// GRID CONTRACT:
//   - Rows appear in sheet order, including blank rows.
//   - Every row is padded with empty cells to the width of the widest row.
//   - Blank cells are types.Empty. Text keeps its whitespace.
//   - .xlsx cells keep the type stored in the workbook: string cells stay
//     types.Text even when they look numeric ("007").
//   - .xls and .csv only yield strings, so their cells are typed with
//     types.ParseCell (numeric text becomes types.Number).
//
// =============================================================================

package xlsparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/ginjaninja78/biupdate/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// ERRORS
// =============================================================================

// MissingInputError is returned when the input path does not exist.
type MissingInputError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input file %q is missing or not in the expected location", e.Path)
}

// Unwrap exposes the underlying fs error, so errors.Is(err, fs.ErrNotExist) holds.
func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// ErrUnsupportedFormat is returned for file extensions the reader cannot open.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls how workbooks are decoded.
type Options struct {
	// Charset is the text encoding of legacy .xls workbooks.
	// Default: "utf-8"
	Charset string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Charset: "utf-8"}
}

// =============================================================================
// READER
// =============================================================================

// Read loads the first sheet of the workbook at path.
//
// PARAMETERS:
//   - path: The .xls, .xlsx or .csv file to read.
//   - opts: Decoding options.
//
// RETURNS:
//   - The grid of the first sheet.
//   - A *MissingInputError if the file does not exist, or a wrapped decode error.
func Read(path string, opts Options) (types.Grid, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if opts.Charset == "" {
		opts.Charset = DefaultOptions().Charset
	}

	var (
		rows [][]types.Cell
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		rows, err = readXLS(path, opts.Charset)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return toGrid(rows), nil
}

// readXLS reads the first sheet of a BIFF workbook. Row widths come from the
// ROW records; rows without one read as blank.
func readXLS(path, charset string) ([][]types.Cell, error) {
	wb, err := xls.Open(path, charset)
	if err != nil {
		return nil, err
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows := make([][]types.Cell, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cols := make([]types.Cell, row.LastCol())
		for j := range cols {
			cols[j] = types.ParseCell(row.Col(j))
		}
		rows = append(rows, cols)
	}

	return rows, nil
}

// sheetRow returns row i of the sheet, or nil when the sheet has no record
// for it. xls.WorkSheet.Row dereferences missing rows.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// readXLSX reads the first sheet of an Office Open XML workbook, keeping the
// stored type of every string cell.
func readXLSX(path string) ([][]types.Cell, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	rows := make([][]types.Cell, len(raw))
	for i, values := range raw {
		cols := make([]types.Cell, len(values))
		for j, value := range values {
			if value == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, axis)
			if err != nil {
				return nil, err
			}
			cols[j] = xlsxCell(cellType, value)
		}
		rows[i] = cols
	}

	return rows, nil
}

// xlsxCell types a raw .xlsx value by its stored cell type.
func xlsxCell(cellType excelize.CellType, value string) types.Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return types.TextCell(value)
	default:
		return types.ParseCell(value)
	}
}

// readCSV reads a comma-separated re-export. Rows may differ in length.
func readCSV(path string) ([][]types.Cell, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]types.Cell, len(records))
	for i, record := range records {
		cols := make([]types.Cell, len(record))
		for j, value := range record {
			cols[j] = types.ParseCell(value)
		}
		rows[i] = cols
	}
	return rows, nil
}

// toGrid pads rows to a rectangle.
func toGrid(rows [][]types.Cell) types.Grid {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	grid := make(types.Grid, len(rows))
	for i, r := range rows {
		row := make(types.Row, width)
		copy(row, r)
		grid[i] = row
	}
	return grid
}
