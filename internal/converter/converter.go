// =============================================================================
// BI Update - Converter Module
// =============================================================================
//
// This module orchestrates one run of the tool. Each report goes through the
// same pipeline:
//
// CONVERSION PIPELINE:
//   1. Read the first sheet of the export
//   2. Reshape it into a flat table
//   3. Validate the table
//   4. Write the table to <output>.xlsx
//
// The item-sales report runs first, then the invoice report. The source
// exports are deleted only after both outputs have been written. There is no
// rollback: if the second report fails, the first output stays on disk and
// both sources are kept.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/biupdate/internal/reshape"
	"github.com/ginjaninja78/biupdate/internal/sku"
	"github.com/ginjaninja78/biupdate/internal/types"
	"github.com/ginjaninja78/biupdate/internal/validation"
	"github.com/ginjaninja78/biupdate/internal/xlsparser"
	"github.com/ginjaninja78/biupdate/internal/xlsxwriter"
	"github.com/ginjaninja78/biupdate/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a run.
type Result struct {
	// RunID tags every log entry of the run.
	RunID string

	// Reports holds one entry per report that completed.
	Reports []ReportResult

	// SourcesRemoved is true when both exports were deleted.
	SourcesRemoved bool

	// ProcessingTime is the time taken by the whole run.
	ProcessingTime time.Duration
}

// ReportResult represents the outcome of processing a single report.
type ReportResult struct {
	// Name is the report name ("item sales", "invoice details").
	Name string

	// InputFile is the path of the export that was read.
	InputFile string

	// OutputFile is the path of the written workbook. Empty on a dry run.
	OutputFile string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of rows in the export, header included.
	RowsRead int

	// RowsWritten is the number of data rows in the output, header excluded.
	RowsWritten int

	// ProcessingTime is the time taken to process the report.
	ProcessingTime time.Duration
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options describes one run.
type Options struct {
	// DataDir holds the exports and receives the outputs.
	DataDir string

	// ItemSalesInput and InvoiceInput name the exports, relative to DataDir.
	ItemSalesInput string
	InvoiceInput   string

	// ItemSalesOutput and InvoiceOutput name the outputs without extension,
	// relative to DataDir.
	ItemSalesOutput string
	InvoiceOutput   string

	// DryRun reads, reshapes and validates without writing or deleting.
	DryRun bool

	// RemoveSources deletes both exports after both outputs are written.
	RemoveSources bool

	// Reader controls workbook decoding.
	Reader xlsparser.Options
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs both report pipelines.
type Converter struct {
	opts     Options
	skus     *sku.Table
	reshaper *reshape.Reshaper
	files    *utils.FileManager
	logger   *slog.Logger
	runID    string
}

// report is one pipeline definition.
type report struct {
	name    string
	input   string
	output  string
	reshape func(types.Grid) (*types.Table, error)
	schema  func(*types.Table) validation.Schema
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - opts: The run options.
//   - skus: The SKU table; nil uses the built-in table.
//   - logger: The base logger; nil uses slog.Default().
func New(opts Options, skus *sku.Table, logger *slog.Logger) *Converter {
	if skus == nil {
		skus = sku.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	runID := utils.NewRunID()
	logger = logger.With("run_id", runID)

	return &Converter{
		opts:     opts,
		skus:     skus,
		reshaper: reshape.New(skus, logger),
		files:    utils.NewFileManager(opts.DataDir),
		logger:   logger,
		runID:    runID,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes both pipelines and, when configured, removes the sources.
//
// RETURNS:
//   - A Result describing the completed reports, also on failure.
//   - The first error encountered. Errors from the reader, SKU lookup and
//     reshapers are wrapped, so errors.As finds *xlsparser.MissingInputError,
//     *sku.UnknownSKUError and *reshape.MalformedRowError.
func (c *Converter) Run() (*Result, error) {
	startTime := time.Now()
	result := &Result{RunID: c.runID}

	reports := []report{
		{
			name:    "item sales",
			input:   c.files.InputPath(c.opts.ItemSalesInput),
			output:  c.files.OutputBase(c.opts.ItemSalesOutput),
			reshape: c.reshaper.ItemSales,
			schema:  func(*types.Table) validation.Schema { return validation.ItemSalesSchema() },
		},
		{
			name:    "invoice details",
			input:   c.files.InputPath(c.opts.InvoiceInput),
			output:  c.files.OutputBase(c.opts.InvoiceOutput),
			reshape: c.reshaper.InvoiceDetails,
			schema:  validation.InvoiceSchema,
		},
	}

	for _, r := range reports {
		rr, err := c.process(r)
		if err != nil {
			result.ProcessingTime = time.Since(startTime)
			return result, fmt.Errorf("%s: %w", r.name, err)
		}
		result.Reports = append(result.Reports, *rr)
	}

	// =========================================================================
	// SOURCE REMOVAL
	// =========================================================================

	if !c.opts.DryRun && c.opts.RemoveSources {
		if err := c.files.RemoveSources(reports[0].input, reports[1].input); err != nil {
			result.ProcessingTime = time.Since(startTime)
			return result, err
		}
		result.SourcesRemoved = true
		c.logger.Info("removed source exports", "item_sales", reports[0].input, "invoices", reports[1].input)
	}

	result.ProcessingTime = time.Since(startTime)
	return result, nil
}

// process runs read -> reshape -> validate -> write for one report.
func (c *Converter) process(r report) (*ReportResult, error) {
	startTime := time.Now()
	logger := c.logger.With("report", r.name)
	rr := &ReportResult{Name: r.name, InputFile: r.input}

	// =========================================================================
	// STEP 1: READ
	// =========================================================================

	grid, err := xlsparser.Read(r.input, c.opts.Reader)
	if err != nil {
		var missing *xlsparser.MissingInputError
		if errors.As(err, &missing) {
			logger.Error("input file is missing or not in the right location", "path", missing.Path)
		}
		return nil, err
	}
	rr.Stats.RowsRead = len(grid)
	logger.Debug("read export", "path", r.input, "rows", len(grid))

	// =========================================================================
	// STEP 2: RESHAPE
	// =========================================================================

	table, err := r.reshape(grid)
	if err != nil {
		return nil, err
	}
	rr.Stats.RowsWritten = len(table.Rows)

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	check := validation.NewValidator(r.schema(table), c.skus).Validate(table)
	if !check.IsValid {
		for _, ve := range check.Errors {
			logger.Warn("validation error", "error", ve.Error())
		}
		return nil, check.Err()
	}

	// =========================================================================
	// STEP 4: WRITE
	// =========================================================================

	if c.opts.DryRun {
		logger.Info("dry run: output not written", "rows", rr.Stats.RowsWritten)
	} else {
		path, err := xlsxwriter.Write(table, r.output)
		if err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		rr.OutputFile = path
		logger.Info("wrote output", "path", path, "rows", rr.Stats.RowsWritten)
	}

	rr.Stats.ProcessingTime = time.Since(startTime)
	return rr, nil
}
