// =============================================================================
// BI Update - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (biupdate)
//   ├── processCmd (biupdate process)
//   └── versionCmd (biupdate version)
//
// The root command owns the global flags and turns them into a loaded
// configuration and a configured logger before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/biupdate/internal/config"
	"github.com/ginjaninja78/biupdate/internal/logging"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// mainConfig is loaded in PersistentPreRunE.
var mainConfig *config.MainConfig

// closeLog releases the log file, if any.
var closeLog = func() error { return nil }

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "biupdate",
	Short: "Reshape point-of-sale report exports for Power BI",
	Long: `biupdate turns the item-sales and invoice line-item exports of the
point-of-sale reporting tool into flat .xlsx tables for Power BI.

Place the tool in a direct sub-folder of the folder holding the exports.
Outputs are written next to the exports and the exports are deleted once
both outputs exist.

Example Usage:
  biupdate process sales_bi invoices_bi
  biupdate process sales_bi invoices_bi --salesinput itemsales_q1.xls
  biupdate process sales_bi invoices_bi --dry-run -v`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cmd.Flags().Changed("config") {
			mainConfig, err = config.LoadMainConfig(cfgFile)
		} else {
			mainConfig, err = config.LoadOptional(cfgFile)
		}
		if err != nil {
			return err
		}

		level := mainConfig.LogLevel
		if verbose {
			level = "debug"
		}
		closeLog, err = logging.Setup(level, mainConfig.LogFormat, mainConfig.LogFile)
		return err
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: Path to the configuration file. A missing default file
	// is not an error.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
