package reshape

import (
	"errors"
	"testing"

	"github.com/ginjaninja78/biupdate/internal/sku"
	"github.com/ginjaninja78/biupdate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceHeader() types.Row {
	return row(13, "Invoice Number", "Invoice Date", "Last Name", "First Name", "SKU", "Product",
		"Quantity", "Price", "Discount", "Total", "Order Type", "Sales Rep", "Payment Type")
}

func invoiceGrid() types.Grid {
	return types.Grid{
		invoiceHeader(),
		row(13, 75650.0, " 01/02/16", "Smith", "Dave", "11ROZV", "2011 Roussanne", 6.0, 28.0, 0.0, 168.0, "Retail", "Scott", "Visa"),
		row(13, "", "", "", "", "", "continued", "", "", "", "", "", "", ""),
		row(13, 75651.0, " 01/02/16", "Brown", "John", "MERCH", "Logo Glass", 2.0, 8.0, 0.0, 16.0, "Retail", "Scott", "Cash"),
		row(13, 75652.0, " 01/02/16", "Brown", "John", "12SYZV1.5L", "2012 Syrah 1.5L", 1.0, 60.0, 0.0, 60.0, "Club", "Scott", "Cash"),
		row(13),
	}
}

func TestInvoiceDetails(t *testing.T) {
	table, err := New(sku.Default(), nil).InvoiceDetails(invoiceGrid())
	require.NoError(t, err)

	assert.Equal(t, []string{"Invoice Number", "Invoice Date", "Last Name", "First Name", "Varietal",
		"Product", "Quantity", "Price", "Discount", "Total", "Order Type"}, table.Header)

	require.Len(t, table.Rows, 2)
	assert.Equal(t,
		[]interface{}{75650, " 01/02/16", "Smith", "Dave", "Roussanne", "2011 Roussanne", 6, 28.0, 0.0, 168.0, "Retail"},
		values(table.Rows[0]))
	assert.Equal(t, "Syrah 1.5L", table.Rows[1][4].Text())
	assert.Equal(t, 75652, table.Rows[1][0].Value())
}

func TestInvoiceDetailsTypedFields(t *testing.T) {
	skus := sku.Default()
	table, err := New(skus, nil).InvoiceDetails(invoiceGrid())
	require.NoError(t, err)

	for _, r := range table.Rows {
		assert.Len(t, r, 11)
		assert.Equal(t, types.Integer, r[0].Kind)
		assert.Equal(t, types.Integer, r[6].Kind)
		assert.True(t, skus.IsVarietal(r[4].Text()))
	}
}

func TestInvoiceDetailsIsRepeatable(t *testing.T) {
	grid := invoiceGrid()
	r := New(sku.Default(), nil)

	first, err := r.InvoiceDetails(grid)
	require.NoError(t, err)
	second, err := r.InvoiceDetails(grid)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, invoiceGrid(), grid)
}

func TestInvoiceDetailsUnknownSKU(t *testing.T) {
	grid := types.Grid{
		invoiceHeader(),
		row(13, 75650.0, " 01/02/16", "Smith", "Dave", "14ZZTOP", "2014 Mystery", 6.0),
	}

	_, err := New(sku.Default(), nil).InvoiceDetails(grid)
	var unknown *sku.UnknownSKUError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ZZTOP", unknown.Code)
}

func TestInvoiceDetailsEmptyGrid(t *testing.T) {
	table, err := New(sku.Default(), nil).InvoiceDetails(nil)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.Empty(t, table.Header)
}

func TestInvoiceDetailsShortRow(t *testing.T) {
	grid := types.Grid{
		invoiceHeader(),
		types.Row{types.NumberCell(1), types.TextCell("x")},
	}

	_, err := New(sku.Default(), nil).InvoiceDetails(grid)
	var malformed *MalformedRowError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Row)
	assert.Equal(t, 6, malformed.Want)
}

func TestInvoiceDetailsBadInvoiceNumber(t *testing.T) {
	grid := types.Grid{
		invoiceHeader(),
		row(13, "VOID", " 01/02/16", "Smith", "Dave", "11ROZV", "2011 Roussanne", 6.0),
	}

	_, err := New(sku.Default(), nil).InvoiceDetails(grid)
	var coercion *CoercionError
	require.True(t, errors.As(err, &coercion))
	assert.Equal(t, "Invoice Number", coercion.Column)
}
