// =============================================================================
// BI Update - Main Entry Point
// =============================================================================
//
// This is the main entry point for the BI Update CLI application. It reshapes
// the point-of-sale item-sales and invoice line-item exports into flat
// workbooks for the BI model.
//
// USAGE:
//   biupdate process <item-sales-output> <invoice-details-output>
//   biupdate version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Reader, reshapers, SKU list, validation, writer, pipeline
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/biupdate/cmd"
)

func main() {
	cmd.Execute()
}
