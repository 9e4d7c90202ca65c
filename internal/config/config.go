// =============================================================================
// BI Update - Configuration Module
// =============================================================================
//
// This module loads the optional biupdate.yaml file. Every setting has a
// default, so the tool runs with no file at all; command-line flags override
// whatever the file says.
//
// EXAMPLE (biupdate.yaml):
//
//   data_dir: ..
//   item_sales_input: itemsales.xls
//   invoice_input: directmarketingreporttransactionitem.xls
//   log_level: info
//   sku_overrides:
//     GSM: Rhone Blend
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults for the report inputs.
const (
	DefaultDataDir        = ".."
	DefaultItemSalesInput = "itemsales.xls"
	DefaultInvoiceInput   = "directmarketingreporttransactionitem.xls"
	DefaultConfigFile     = "biupdate.yaml"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the application configuration.
type MainConfig struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// DataDir is the directory holding the report exports. Outputs are
	// written there too.
	// Default: ".." (the tool lives in a sub-folder of the data folder)
	DataDir string `yaml:"data_dir"`

	// ItemSalesInput is the file name of the item-sales export.
	// Default: "itemsales.xls"
	ItemSalesInput string `yaml:"item_sales_input"`

	// InvoiceInput is the file name of the invoice line-item export.
	// Default: "directmarketingreporttransactionitem.xls"
	InvoiceInput string `yaml:"invoice_input"`

	// XLSCharset is the text encoding of legacy .xls exports.
	// Default: "utf-8"
	XLSCharset string `yaml:"xls_charset"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// RemoveSources deletes both exports after both outputs are written.
	// Default: true
	RemoveSources *bool `yaml:"remove_sources"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log encoding: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// LogFile, when set, receives a copy of every log entry.
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// SKU SETTINGS
	// =========================================================================

	// SKUOverrides adds or replaces entries of the built-in SKU list.
	SKUOverrides map[string]string `yaml:"sku_overrides"`
}

// ShouldRemoveSources reports the effective RemoveSources setting.
func (c *MainConfig) ShouldRemoveSources() bool {
	return c.RemoveSources == nil || *c.RemoveSources
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOptional loads configPath if it exists and returns the defaults if it
// does not. Read and parse errors for an existing file are returned.
func LoadOptional(configPath string) (*MainConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadMainConfig(configPath)
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.DataDir == "" {
		config.DataDir = DefaultDataDir
	}
	if config.ItemSalesInput == "" {
		config.ItemSalesInput = DefaultItemSalesInput
	}
	if config.InvoiceInput == "" {
		config.InvoiceInput = DefaultInvoiceInput
	}
	if config.XLSCharset == "" {
		config.XLSCharset = "utf-8"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
}

// Validate checks the configuration for values the tool cannot use.
func (c *MainConfig) Validate() error {
	if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
		return fmt.Errorf("data_dir %s is not a directory", c.DataDir)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}

	if c.ItemSalesInput == c.InvoiceInput {
		return fmt.Errorf("item_sales_input and invoice_input both name %s", c.ItemSalesInput)
	}

	return nil
}
