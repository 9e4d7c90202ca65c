// =============================================================================
// BI Update - Shared Types
// =============================================================================
//
// This package contains the in-memory grid model shared by the reader, the
// reshapers, the validator and the writer:
//   - Cell  : a single typed spreadsheet value (empty, text, number, integer)
//   - Row   : an ordered sequence of cells
//   - Grid  : the raw first sheet of a report, header row first
//   - Table : a flat, reshaped table ready to be written
//
// =============================================================================

package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// CELL
// =============================================================================

// CellKind identifies which value a Cell holds.
type CellKind int

const (
	// Empty is the blank-cell sentinel.
	Empty CellKind = iota
	Text
	Number
	Integer
)

// Cell is one spreadsheet value. The zero Cell is Empty.
type Cell struct {
	Kind CellKind
	str  string
	num  float64
	i    int
}

// TextCell returns a Text cell, or an Empty cell for "".
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: Text, str: s}
}

// NumberCell returns a Number cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: Number, num: f}
}

// IntCell returns an Integer cell.
func IntCell(i int) Cell {
	return Cell{Kind: Integer, i: i}
}

// ParseCell types a raw string from a source that stores no cell types
// (.xls as read by extrame/xls, .csv). Blank stays Empty, anything that
// parses as a float becomes a Number, everything else is Text. Text keeps
// its surrounding whitespace (" 01/02/16 PM").
//
// Numeric-looking text such as "007" comes back as the Number 7. Readers of
// typed workbooks (.xlsx) should build Text cells for string cells instead.
func ParseCell(raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return NumberCell(f)
		}
	}
	return TextCell(raw)
}

// IsEmpty reports whether the cell is the blank sentinel.
func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// Text renders the cell as text. Whole numbers render without a fraction.
func (c Cell) Text() string {
	switch c.Kind {
	case Text:
		return c.str
	case Number:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case Integer:
		return strconv.Itoa(c.i)
	default:
		return ""
	}
}

// Int coerces the cell to an integer, truncating any fraction.
//
// RETURNS:
//   - The integer value.
//   - An error if the cell is empty or holds non-numeric text.
func (c Cell) Int() (int, error) {
	switch c.Kind {
	case Integer:
		return c.i, nil
	case Number:
		return int(c.num), nil
	case Text:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.str), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to an integer", c.str)
		}
		return int(f), nil
	default:
		return 0, fmt.Errorf("cannot convert an empty cell to an integer")
	}
}

// Value returns the cell as a native Go value for spreadsheet writers:
// string, float64, int, or nil for Empty.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case Text:
		return c.str
	case Number:
		return c.num
	case Integer:
		return c.i
	default:
		return nil
	}
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return c.Text()
}

// =============================================================================
// ROWS, GRIDS AND TABLES
// =============================================================================

// Row is an ordered sequence of cells.
type Row []Cell

// At returns the cell at index i, or an Empty cell when i is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Clone returns a copy of the row that shares no storage with r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// TextRow builds a row of Text cells.
func TextRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = TextCell(v)
	}
	return row
}

// Grid is the raw content of a report's first sheet, header row first.
type Grid []Row

// Width returns the length of the longest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Table is a flat, reshaped table. Header holds the column labels and Rows
// holds one row per surviving transaction line.
type Table struct {
	Header []string
	Rows   []Row
}

// Column returns the index of the header label, or -1.
func (t *Table) Column(label string) int {
	for i, h := range t.Header {
		if h == label {
			return i
		}
	}
	return -1
}
