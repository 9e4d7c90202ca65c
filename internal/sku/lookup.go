// =============================================================================
// BI Update - SKU Lookup Table
// =============================================================================
//
// This package maps short product codes (SKUs) to the varietal names shown in
// BI dashboards. The master list is embedded in the binary (skus.yaml) and is
// read once; a Table never changes after construction and is safe to share.
//
// An unknown code is a hard failure. It means the master list is out of date
// and the report cannot be trusted until someone adds the code.
//
// =============================================================================

package sku

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed skus.yaml
var builtinSKUs []byte

// UnknownSKUError is returned by Resolve when a code is not in the table.
type UnknownSKUError struct {
	Code string
}

// Error implements the error interface.
func (e *UnknownSKUError) Error() string {
	return fmt.Sprintf("unknown SKU %q: add it to the SKU list", e.Code)
}

// Table is an immutable SKU -> varietal mapping.
type Table struct {
	entries map[string]string
}

var defaultTable = mustLoadBuiltin()

// Default returns the built-in table.
func Default() *Table {
	return defaultTable
}

// New returns a table built from the embedded master list plus overrides.
// Override entries replace built-in entries with the same code.
//
// RETURNS:
//   - The new Table.
//   - An error if an override has an empty code or an empty varietal.
func New(overrides map[string]string) (*Table, error) {
	if len(overrides) == 0 {
		return defaultTable, nil
	}

	entries := make(map[string]string, len(defaultTable.entries)+len(overrides))
	for code, name := range defaultTable.entries {
		entries[code] = name
	}
	for code, name := range overrides {
		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fmt.Errorf("SKU override has an empty code")
		}
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("SKU override %q has an empty varietal", code)
		}
		entries[code] = name
	}

	return &Table{entries: entries}, nil
}

// Parse builds a table from a YAML document of `CODE: Varietal` pairs.
func Parse(data []byte) (*Table, error) {
	entries := make(map[string]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse SKU list: %w", err)
	}
	return &Table{entries: entries}, nil
}

func mustLoadBuiltin() *Table {
	t, err := Parse(builtinSKUs)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the varietal for a bare SKU.
func (t *Table) Resolve(code string) (string, error) {
	name, ok := t.entries[code]
	if !ok {
		return "", &UnknownSKUError{Code: code}
	}
	return name, nil
}

// Has reports whether code is in the table.
func (t *Table) Has(code string) bool {
	_, ok := t.entries[code]
	return ok
}

// Len returns the number of codes.
func (t *Table) Len() int {
	return len(t.entries)
}

// Varietals returns the distinct varietal names, sorted.
func (t *Table) Varietals() []string {
	seen := make(map[string]struct{}, len(t.entries))
	var names []string
	for _, name := range t.entries {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsVarietal reports whether name is one of the table's values.
func (t *Table) IsVarietal(name string) bool {
	for _, v := range t.entries {
		if v == name {
			return true
		}
	}
	return false
}
