package reshape

import (
	"github.com/ginjaninja78/biupdate/internal/types"
)

// =============================================================================
// INVOICE DETAILS LAYOUT
// =============================================================================
//
// The invoice line-item export has one line per row. The columns used here:
//
//   | 0              | ... | 4              | 5                 | 6        | ... | 11, 12               |
//   |----------------|-----|----------------|-------------------|----------|-----|----------------------|
//   | Invoice Number | ... | SKU (11ROZV)   | Product (2011 ...) | Quantity | ... | Sales Rep, Payment   |
//
// Rows with a blank invoice number are continuation or separator rows.

const (
	invoiceWidth        = 11
	invoiceColNumber    = 0
	invoiceColSKU       = 4
	invoiceColProduct   = 5
	invoiceColQuantity  = 6
	invoiceMinWidth     = invoiceColQuantity + 1
	invoiceFilterWidth  = invoiceColProduct + 1
	invoiceDetailReport = "invoice details"
)

// InvoiceDetails reshapes the invoice line-item grid.
//
// PROCESSING STEPS:
//   1. Crop every row to its first 11 cells (drops Sales Rep and Payment Type).
//   2. Drop rows with an empty invoice number; the first remaining row is
//      the header.
//   3. Keep data rows whose product description starts with "20".
//   4. Strip the year from the SKU column and resolve it to a varietal.
//   5. Rename the SKU header to "Varietal".
//   6. Coerce Invoice Number and Quantity to integers.
//
// An empty grid yields an empty table. The grid is not modified.
func (r *Reshaper) InvoiceDetails(grid types.Grid) (*types.Table, error) {
	var invoices []sourceRow
	for i, row := range grid {
		cropped := row
		if len(cropped) > invoiceWidth {
			cropped = cropped[:invoiceWidth]
		}
		if cropped.At(invoiceColNumber).IsEmpty() {
			continue
		}
		invoices = append(invoices, sourceRow{num: i + 1, row: cropped})
	}

	if len(invoices) == 0 {
		return &types.Table{}, nil
	}

	header := invoices[0]
	if len(header.row) < invoiceMinWidth {
		return nil, &MalformedRowError{Row: header.num, Width: len(header.row), Want: invoiceMinWidth}
	}

	table := &types.Table{Header: make([]string, len(header.row))}
	for i, cell := range header.row {
		table.Header[i] = cell.Text()
	}
	quantityLabel := table.Header[invoiceColQuantity]
	numberLabel := table.Header[invoiceColNumber]
	table.Header[invoiceColSKU] = LabelVarietal

	// =========================================================================
	// WINE FILTER
	// =========================================================================

	var wines []sourceRow
	for _, line := range invoices[1:] {
		if len(line.row) < invoiceFilterWidth {
			return nil, &MalformedRowError{Row: line.num, Width: len(line.row), Want: invoiceFilterWidth}
		}
		if !isVintage(line.row[invoiceColProduct].Text()) {
			continue
		}
		if len(line.row) < invoiceMinWidth {
			return nil, &MalformedRowError{Row: line.num, Width: len(line.row), Want: invoiceMinWidth}
		}
		wines = append(wines, line)
	}

	// =========================================================================
	// SKU RESOLUTION
	// =========================================================================

	varietals := make([]string, len(wines))
	for i, line := range wines {
		name, err := r.resolve(invoiceDetailReport, line.num, stripYear(line.row[invoiceColSKU].Text()))
		if err != nil {
			return nil, err
		}
		varietals[i] = name
	}

	// =========================================================================
	// OUTPUT ROWS
	// =========================================================================

	table.Rows = make([]types.Row, 0, len(wines))
	for i, line := range wines {
		out := line.row.Clone()
		out[invoiceColSKU] = types.TextCell(varietals[i])

		number, err := toInt(out[invoiceColNumber], line.num, numberLabel)
		if err != nil {
			return nil, err
		}
		quantity, err := toInt(out[invoiceColQuantity], line.num, quantityLabel)
		if err != nil {
			return nil, err
		}
		out[invoiceColNumber] = number
		out[invoiceColQuantity] = quantity

		table.Rows = append(table.Rows, out)
	}

	return table, nil
}
