// =============================================================================
// BI Update - Report Reshaping
// =============================================================================
//
// This package turns the raw grids of the two point-of-sale reports into flat
// tables:
//   - ItemSales      : item-sales report, grouped by product (group header
//                      rows followed by the sale lines of that product)
//   - InvoiceDetails : invoice line-item report, one line per row
//
// Both reshapers work on fixed column offsets, exactly as the reports are
// exported. Rows that are too short for those offsets are reported as
// MalformedRowError rather than guessed at.
//
// SHARED RULES:
//   - A product belongs in the output only when its description starts with
//     a vintage year beginning with "20".
//   - Composite codes carry a 2-digit year prefix (11ROZV = 2011 ROZV) that
//     is stripped before the SKU lookup.
//   - An unknown SKU aborts the whole report.
//
// =============================================================================

package reshape

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ginjaninja78/biupdate/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrEmptyReport is returned when a report has no header row.
var ErrEmptyReport = errors.New("report has no rows")

// MalformedRowError reports a row that is too short for the fixed layout.
type MalformedRowError struct {
	// Row is the 1-based row number in the source sheet.
	Row int

	// Width is the number of cells the row has.
	Width int

	// Want is the minimum number of cells the layout needs.
	Want int
}

// Error implements the error interface.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row %d: has %d cells, need at least %d", e.Row, e.Width, e.Want)
}

// CoercionError reports a cell that should hold a whole number but doesn't.
type CoercionError struct {
	Row    int
	Column string
	Value  string
}

// Error implements the error interface.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("row %d, column %q: %q is not a number", e.Row, e.Column, e.Value)
}

// =============================================================================
// RESHAPER
// =============================================================================

// Resolver maps a bare SKU to its varietal name.
type Resolver interface {
	Resolve(code string) (string, error)
}

// Reshaper holds the collaborators shared by both reports.
type Reshaper struct {
	skus   Resolver
	logger *slog.Logger
}

// New creates a Reshaper. A nil logger falls back to slog.Default().
func New(skus Resolver, logger *slog.Logger) *Reshaper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reshaper{skus: skus, logger: logger}
}

// vintagePrefix marks product descriptions that are real wines ("2011 Roussanne").
const vintagePrefix = "20"

// yearPrefixLen is the length of the year fragment on composite codes.
const yearPrefixLen = 2

// isVintage reports whether a product description names a vintage wine.
func isVintage(description string) bool {
	return strings.HasPrefix(description, vintagePrefix)
}

// stripYear removes the 2-digit year from a composite code (10SYZV3L -> SYZV3L).
func stripYear(code string) string {
	if len(code) <= yearPrefixLen {
		return ""
	}
	return code[yearPrefixLen:]
}

// resolve looks up a SKU and logs the code before handing back a miss.
func (r *Reshaper) resolve(report string, row int, code string) (string, error) {
	name, err := r.skus.Resolve(code)
	if err != nil {
		r.logger.Error("SKU missing from the SKU list",
			"report", report,
			"row", row,
			"code", code,
		)
		return "", err
	}
	return name, nil
}

// toInt coerces a numeric cell, naming the column on failure.
func toInt(cell types.Cell, row int, column string) (types.Cell, error) {
	n, err := cell.Int()
	if err != nil {
		return types.Cell{}, &CoercionError{Row: row, Column: column, Value: cell.Text()}
	}
	return types.IntCell(n), nil
}

// sourceRow is a row together with its 1-based position in the source sheet.
type sourceRow struct {
	num int
	row types.Row
}
