package reshape

import (
	"github.com/ginjaninja78/biupdate/internal/types"
)

// =============================================================================
// ITEM SALES LAYOUT
// =============================================================================
//
// The item-sales export looks like this (first sheet):
//
//   | 0        | 1               | 2       | 3              | 4    | ... | 12..16                                            |
//   |----------|-----------------|---------|----------------|------|-----|---------------------------------------------------|
//   | Item Sales report metadata ...                                     | Last Name, First Name, Order Number, Invoice Date, Quantity |
//   | 11ROZV   | 2011 Roussanne  |         |                |      |     |                                                   |
//   | Smith    | Dave            | 75650   | 01/02/16 PM    | 6    |     |                                                   |
//   | 11ROZV   | Count of Customers | 5    | 26             |      |     |                                                   |
//
// The column labels live at offsets 12-16 of the header row while the values
// they name live at offsets 0-4 of every data row. A row whose order number
// cell (offset 2) is empty starts a new product group.

const (
	itemSalesHeaderOffset = 12
	itemSalesFieldCount   = 5
	itemSalesHeaderWidth  = itemSalesHeaderOffset + itemSalesFieldCount
)

// Source offsets within a data row.
const (
	colLastName = iota
	colFirstName
	colOrderNumber
	colInvoiceDate
	colQuantity
)

// Output column labels added in front of the kept report labels.
const (
	LabelVarietal = "Varietal"
	LabelProduct  = "Product"
	LabelFullName = "Full Name"
)

const itemSalesReport = "item sales"

// group is the product group a sale line belongs to.
type group struct {
	code string
	name string
}

// saleLine is a data row stamped with its group.
type saleLine struct {
	sourceRow
	group group
}

// ItemSales reshapes the item-sales grid into a flat table with the columns
// Varietal, Product, Full Name, Last Name, First Name, Order Number,
// Invoice Date, Quantity.
//
// PROCESSING STEPS:
//   1. Keep the 5 labels at header offsets 12-16.
//   2. Walk the data rows in order, carrying the current group forward:
//      a row with an empty order number cell replaces the group with its
//      own code and description, every row is stamped with the group.
//   3. Keep rows whose group description starts with "20".
//   4. Drop rows with an empty quantity (group headers, per-group totals,
//      page footers).
//   5. Strip the year from the group code and resolve the SKU.
//   6. Add Full Name ("Last, First") and coerce Order Number and Quantity
//      to integers.
//
// The grid is not modified.
func (r *Reshaper) ItemSales(grid types.Grid) (*types.Table, error) {
	if len(grid) == 0 {
		return nil, ErrEmptyReport
	}

	header := grid[0]
	if len(header) < itemSalesHeaderWidth {
		return nil, &MalformedRowError{Row: 1, Width: len(header), Want: itemSalesHeaderWidth}
	}

	table := &types.Table{
		Header: []string{LabelVarietal, LabelProduct, LabelFullName},
	}
	for _, cell := range header[itemSalesHeaderOffset:itemSalesHeaderWidth] {
		table.Header = append(table.Header, cell.Text())
	}

	// =========================================================================
	// GROUP PROPAGATION AND FILTERING
	// =========================================================================

	var (
		current group
		lines   []saleLine
	)
	for i, row := range grid[1:] {
		num := i + 2
		if len(row) < itemSalesFieldCount {
			return nil, &MalformedRowError{Row: num, Width: len(row), Want: itemSalesFieldCount}
		}

		if row[colOrderNumber].IsEmpty() {
			current = group{code: row[colLastName].Text(), name: row[colFirstName].Text()}
		}

		if !isVintage(current.name) {
			continue
		}
		if row[colQuantity].IsEmpty() {
			continue
		}

		lines = append(lines, saleLine{
			sourceRow: sourceRow{num: num, row: row},
			group:     current,
		})
	}

	// =========================================================================
	// SKU RESOLUTION
	// =========================================================================

	varietals := make([]string, len(lines))
	for i, line := range lines {
		name, err := r.resolve(itemSalesReport, line.num, stripYear(line.group.code))
		if err != nil {
			return nil, err
		}
		varietals[i] = name
	}

	// =========================================================================
	// OUTPUT ROWS
	// =========================================================================

	table.Rows = make([]types.Row, 0, len(lines))
	for i, line := range lines {
		src := line.row

		orderNumber, err := toInt(src[colOrderNumber], line.num, table.Header[5])
		if err != nil {
			return nil, err
		}
		quantity, err := toInt(src[colQuantity], line.num, table.Header[7])
		if err != nil {
			return nil, err
		}

		fullName := src[colLastName].Text() + ", " + src[colFirstName].Text()

		table.Rows = append(table.Rows, types.Row{
			types.TextCell(varietals[i]),
			types.TextCell(line.group.name),
			types.TextCell(fullName),
			src[colLastName],
			src[colFirstName],
			orderNumber,
			src[colInvoiceDate],
			quantity,
		})
	}

	return table, nil
}
