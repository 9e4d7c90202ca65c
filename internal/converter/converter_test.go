package converter

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/biupdate/internal/reshape"
	"github.com/ginjaninja78/biupdate/internal/sku"
	"github.com/ginjaninja78/biupdate/internal/xlsparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func pad(width int, values ...string) []string {
	row := make([]string, width)
	copy(row, values)
	return row
}

func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	require.NoError(t, f.Close())
}

func itemSalesRows(groupCode string) [][]string {
	return [][]string{
		pad(17, "Item Sales", "Bradshow", "Order Start Date:", " 01/01/16", "Order End Date:", " 01/02/16",
			"Item (begins with):", "All", "Brand  (begins with):", "All", "Category  (begins with):", "All",
			"Last Name", "First Name", "Order Number", "Invoice Date", "Quantity"),
		pad(17, groupCode, "2011 Roussanne"),
		pad(17, "Smith", "Dave", "75650", " 01/02/16 PM", "6"),
		pad(17, "Customer", "Retail", "75642", " 01/02/16 PM", "12"),
		pad(17, groupCode, "Count of Customers", "2", "18"),
		pad(17, "Page -1 of 1", "Scott Pease", "Printed 2/3/2017 11:26:49AM"),
	}
}

func invoiceRows() [][]string {
	return [][]string{
		pad(13, "Invoice Number", "Invoice Date", "Last Name", "First Name", "SKU", "Product",
			"Quantity", "Price", "Discount", "Total", "Order Type", "Sales Rep", "Payment Type"),
		pad(13, "75650", " 01/02/16", "Smith", "Dave", "11ROZV", "2011 Roussanne", "6", "28", "0", "168", "Retail", "Scott", "Visa"),
		pad(13, "", "", "", "", "", "continued"),
		pad(13, "75651", " 01/02/16", "Brown", "John", "MERCH", "Logo Glass", "2", "8", "0", "16", "Retail", "Scott", "Cash"),
	}
}

// setup writes both exports into a fresh data directory.
func setup(t *testing.T, groupCode string) (string, Options) {
	t.Helper()
	dir := t.TempDir()
	writeCSV(t, filepath.Join(dir, "itemsales.csv"), itemSalesRows(groupCode))
	writeCSV(t, filepath.Join(dir, "invoices.csv"), invoiceRows())

	return dir, Options{
		DataDir:         dir,
		ItemSalesInput:  "itemsales.csv",
		InvoiceInput:    "invoices.csv",
		ItemSalesOutput: "sales_bi",
		InvoiceOutput:   "invoices_bi",
		RemoveSources:   true,
		Reader:          xlsparser.DefaultOptions(),
	}
}

func readOutput(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	dir, opts := setup(t, "11ROZV")

	result, err := New(opts, nil, nil).Run()
	require.NoError(t, err)

	require.Len(t, result.Reports, 2)
	assert.NotEmpty(t, result.RunID)
	assert.True(t, result.SourcesRemoved)

	sales := result.Reports[0]
	assert.Equal(t, filepath.Join(dir, "sales_bi.xlsx"), sales.OutputFile)
	assert.Equal(t, 6, sales.Stats.RowsRead)
	assert.Equal(t, 2, sales.Stats.RowsWritten)

	rows := readOutput(t, sales.OutputFile)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Roussanne", "2011 Roussanne", "Smith, Dave", "Smith", "Dave", "75650", " 01/02/16 PM", "6"}, rows[1])

	invoices := readOutput(t, result.Reports[1].OutputFile)
	require.Len(t, invoices, 2)
	assert.Equal(t, "Varietal", invoices[0][4])
	assert.Equal(t, "Roussanne", invoices[1][4])
	assert.Len(t, invoices[0], 11)

	assert.NoFileExists(t, filepath.Join(dir, "itemsales.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "invoices.csv"))
}

func TestRunKeepSources(t *testing.T) {
	dir, opts := setup(t, "11ROZV")
	opts.RemoveSources = false

	result, err := New(opts, nil, nil).Run()
	require.NoError(t, err)
	assert.False(t, result.SourcesRemoved)

	assert.FileExists(t, filepath.Join(dir, "itemsales.csv"))
	assert.FileExists(t, filepath.Join(dir, "sales_bi.xlsx"))
}

func TestRunDryRun(t *testing.T) {
	dir, opts := setup(t, "11ROZV")
	opts.DryRun = true

	result, err := New(opts, nil, nil).Run()
	require.NoError(t, err)
	require.Len(t, result.Reports, 2)
	assert.Empty(t, result.Reports[0].OutputFile)
	assert.Equal(t, 2, result.Reports[0].Stats.RowsWritten)

	assert.NoFileExists(t, filepath.Join(dir, "sales_bi.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "itemsales.csv"))
	assert.FileExists(t, filepath.Join(dir, "invoices.csv"))
}

func TestRunUnknownSKU(t *testing.T) {
	dir, opts := setup(t, "11NEWSKU")

	result, err := New(opts, nil, nil).Run()
	require.Error(t, err)

	var unknown *sku.UnknownSKUError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "NEWSKU", unknown.Code)
	assert.Empty(t, result.Reports)

	assert.NoFileExists(t, filepath.Join(dir, "sales_bi.xlsx"))
	assert.NoFileExists(t, filepath.Join(dir, "invoices_bi.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "itemsales.csv"))
	assert.FileExists(t, filepath.Join(dir, "invoices.csv"))
}

func TestRunSKUOverride(t *testing.T) {
	_, opts := setup(t, "11NEWSKU")
	skus, err := sku.New(map[string]string{"NEWSKU": "New Release"})
	require.NoError(t, err)

	result, err := New(opts, skus, nil).Run()
	require.NoError(t, err)

	rows := readOutput(t, result.Reports[0].OutputFile)
	assert.Equal(t, "New Release", rows[1][0])
}

func TestRunMissingInvoiceKeepsFirstOutput(t *testing.T) {
	dir, opts := setup(t, "11ROZV")
	require.NoError(t, os.Remove(filepath.Join(dir, "invoices.csv")))

	result, err := New(opts, nil, nil).Run()
	require.Error(t, err)

	var missing *xlsparser.MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "invoices.csv")

	require.Len(t, result.Reports, 1)
	assert.FileExists(t, filepath.Join(dir, "sales_bi.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "itemsales.csv"))
	assert.False(t, result.SourcesRemoved)
}

func TestRunMalformedExport(t *testing.T) {
	dir, opts := setup(t, "11ROZV")
	writeCSV(t, filepath.Join(dir, "itemsales.csv"), [][]string{{"Last Name", "First Name"}})

	_, err := New(opts, nil, nil).Run()
	var malformed *reshape.MalformedRowError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Row)
}

func TestRunXLSExport(t *testing.T) {
	dir, opts := setup(t, "11ROZV")
	export, err := os.ReadFile(filepath.Join("..", "xlsparser", "testdata", "itemsales.xls"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "itemsales.xls"), export, 0o644))
	opts.ItemSalesInput = "itemsales.xls"

	result, err := New(opts, nil, nil).Run()
	require.NoError(t, err)

	sales := result.Reports[0]
	assert.Equal(t, 13, sales.Stats.RowsRead)
	assert.Equal(t, 7, sales.Stats.RowsWritten)

	rows := readOutput(t, sales.OutputFile)
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"Varietal", "Product", "Full Name", "Last Name", "First Name", "Order Number", "Invoice Date", "Quantity"}, rows[0])
	assert.Equal(t, []string{"Roussanne", "2011  Roussanne", "Customer, Retail", "Customer", "Retail", "75632", " 01/02/16   PM", "1"}, rows[1])
	assert.Equal(t, []string{"Mesa Reserve Syrah", "2011 Mesa Reserve Syrah", "SAMPLES, 500 - TR", "SAMPLES", "500 - TR", "75683", " 01/02/16   PM", "2"}, rows[7])

	assert.True(t, result.SourcesRemoved)
	assert.NoFileExists(t, filepath.Join(dir, "itemsales.xls"))
}

func TestRunKeepsNumericLookingNames(t *testing.T) {
	dir, opts := setup(t, "11ROZV")

	header := make([]interface{}, 17)
	for i, label := range []string{"Last Name", "First Name", "Order Number", "Invoice Date", "Quantity"} {
		header[12+i] = label
	}
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"11ROZV", "2011 Roussanne"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"007", "James", 75650, " 01/02/16 PM", 6}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "itemsales.xlsx")))
	require.NoError(t, f.Close())
	opts.ItemSalesInput = "itemsales.xlsx"

	result, err := New(opts, nil, nil).Run()
	require.NoError(t, err)

	rows := readOutput(t, result.Reports[0].OutputFile)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Roussanne", "2011 Roussanne", "007, James", "007", "James", "75650", " 01/02/16 PM", "6"}, rows[1])
}
