// =============================================================================
// BI Update - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs both report pipelines.
//
// COMMAND USAGE:
//   biupdate process <item-sales-output> <invoice-details-output> [flags]
//
// ARGUMENTS:
//   item-sales-output      : Output name for the item-sales table (no extension)
//   invoice-details-output : Output name for the invoice table (no extension)
//
// FLAGS:
//   --salesinput    : Item-sales export (default: itemsales.xls)
//   --invoicesinput : Invoice export (default: directmarketingreporttransactionitem.xls)
//   --data-dir      : Folder holding the exports (default: ..)
//   --dry-run       : Reshape and validate without writing or deleting
//   --keep-sources  : Write outputs but keep the exports
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ginjaninja78/biupdate/internal/converter"
	"github.com/ginjaninja78/biupdate/internal/sku"
	"github.com/ginjaninja78/biupdate/internal/xlsparser"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	salesInput    string
	invoicesInput string
	dataDir       string
	dryRun        bool
	keepSources   bool
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process <item-sales-output> <invoice-details-output>",
	Short: "Reshape both report exports into BI tables",
	Long: `The process command reads the item-sales and invoice line-item exports
from the data folder, reshapes each into a flat table and writes
<item-sales-output>.xlsx and <invoice-details-output>.xlsx next to them.

On success both exports are deleted. An unknown SKU or a missing export
aborts the run and leaves the exports in place; add the SKU to the
configuration (sku_overrides) or fix the file placement and run again.`,

	Args: cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args[0], args[1])
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&salesInput,
		"salesinput",
		"",
		"Item-sales export file name, if different from the default (itemsales.xls)",
	)

	processCmd.Flags().StringVar(
		&invoicesInput,
		"invoicesinput",
		"",
		"Invoice export file name, if different from the default (directmarketingreporttransactionitem.xls)",
	)

	processCmd.Flags().StringVar(
		&dataDir,
		"data-dir",
		"",
		"Folder holding the exports and receiving the outputs (default: parent folder)",
	)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Reshape and validate without writing outputs or deleting exports",
	)

	processCmd.Flags().BoolVar(
		&keepSources,
		"keep-sources",
		false,
		"Write outputs but keep the exports",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess merges flags over the configuration and runs the converter.
func runProcess(cmd *cobra.Command, itemSalesOutput, invoiceOutput string) error {
	opts := converter.Options{
		DataDir:         mainConfig.DataDir,
		ItemSalesInput:  mainConfig.ItemSalesInput,
		InvoiceInput:    mainConfig.InvoiceInput,
		ItemSalesOutput: itemSalesOutput,
		InvoiceOutput:   invoiceOutput,
		DryRun:          dryRun,
		RemoveSources:   mainConfig.ShouldRemoveSources() && !keepSources,
		Reader:          xlsparser.Options{Charset: mainConfig.XLSCharset},
	}
	if salesInput != "" {
		opts.ItemSalesInput = salesInput
	}
	if invoicesInput != "" {
		opts.InvoiceInput = invoicesInput
	}
	if dataDir != "" {
		opts.DataDir = dataDir
	}

	skus, err := sku.New(mainConfig.SKUOverrides)
	if err != nil {
		return fmt.Errorf("failed to build SKU list: %w", err)
	}

	result, err := converter.New(opts, skus, slog.Default()).Run()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range result.Reports {
		if r.OutputFile == "" {
			fmt.Fprintf(out, "  %s: %d row(s) (dry run)\n", r.Name, r.Stats.RowsWritten)
			continue
		}
		fmt.Fprintf(out, "  %s -> %s (%d row(s))\n", r.InputFile, r.OutputFile, r.Stats.RowsWritten)
	}
	if result.SourcesRemoved {
		fmt.Fprintln(out, "Source exports removed.")
	}
	fmt.Fprintf(out, "Time elapsed: %s\n", result.ProcessingTime)

	return nil
}
