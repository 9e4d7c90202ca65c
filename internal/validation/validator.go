// =============================================================================
// BI Update - Table Validation
// =============================================================================
//
// This module checks reshaped tables before they are written. The rules are
// the guarantees the BI model relies on:
//   - Count and identifier columns hold whole numbers
//   - Varietal values come from the SKU list
//   - Full Name is exactly "<Last Name>, <First Name>"
//
// ERROR HANDLING:
//   - Errors are collected, not returned on the first failure
//   - Each error carries the output row number, column, value and rule
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/biupdate/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Rule names.
const (
	RuleInteger  = "integer"
	RuleVarietal = "varietal"
	RuleFullName = "full_name"
	RuleColumn   = "column"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	// Field is the column label that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// RowNumber is the 1-based data row in the output table (header excluded).
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber == 0 {
		return fmt.Sprintf("[%s] Field '%s': %s", strings.ToUpper(e.Rule), e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Rule),
		e.RowNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors.
	IsValid bool

	// Errors contains all validation errors.
	Errors []*ValidationError

	// RowsValidated is the number of data rows checked.
	RowsValidated int
}

// Err summarises the result as a single error, or nil when valid.
func (r *ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return fmt.Errorf("validation failed with %d error(s), first: %w", len(r.Errors), r.Errors[0])
}

// =============================================================================
// SCHEMA
// =============================================================================

// VarietalSet reports whether a name is a known varietal.
type VarietalSet interface {
	IsVarietal(name string) bool
}

// Schema names the columns each rule applies to.
type Schema struct {
	// IntegerFields must hold Integer cells.
	IntegerFields []string

	// VarietalField must hold a known varietal.
	VarietalField string

	// FullNameField, when set, must equal "<LastNameField>, <FirstNameField>".
	FullNameField  string
	LastNameField  string
	FirstNameField string
}

// ItemSalesSchema is the schema of the reshaped item-sales table.
func ItemSalesSchema() Schema {
	return Schema{
		IntegerFields:  []string{"Order Number", "Quantity"},
		VarietalField:  "Varietal",
		FullNameField:  "Full Name",
		LastNameField:  "Last Name",
		FirstNameField: "First Name",
	}
}

// InvoiceSchema is the schema of the reshaped invoice-details table. The
// integer columns are addressed by label, so the labels are taken from the
// table header at positions 1 and 7.
func InvoiceSchema(table *types.Table) Schema {
	schema := Schema{VarietalField: "Varietal"}
	for _, i := range []int{0, 6} {
		if i < len(table.Header) {
			schema.IntegerFields = append(schema.IntegerFields, table.Header[i])
		}
	}
	return schema
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks tables against a schema.
type Validator struct {
	schema    Schema
	varietals VarietalSet
}

// NewValidator creates a new Validator instance.
func NewValidator(schema Schema, varietals VarietalSet) *Validator {
	return &Validator{schema: schema, varietals: varietals}
}

// Validate checks every data row of the table.
//
// RETURNS:
//   - A ValidationResult; IsValid is false when any rule failed or a schema
//     column is missing from the header.
func (v *Validator) Validate(table *types.Table) *ValidationResult {
	result := &ValidationResult{
		IsValid:       true,
		Errors:        make([]*ValidationError, 0),
		RowsValidated: len(table.Rows),
	}

	// An empty table has nothing to validate and may have no header at all.
	if len(table.Rows) == 0 {
		return result
	}

	// Resolve every column up front so a missing one is reported once.
	column := func(label string) int {
		idx := table.Column(label)
		if idx < 0 {
			result.add(&ValidationError{
				Field:   label,
				Rule:    RuleColumn,
				Message: "column missing from header",
			})
		}
		return idx
	}

	intCols := make([]int, len(v.schema.IntegerFields))
	for i, label := range v.schema.IntegerFields {
		intCols[i] = column(label)
	}

	varietalCol := -1
	if v.schema.VarietalField != "" && v.varietals != nil {
		varietalCol = column(v.schema.VarietalField)
	}

	fullCol, lastCol, firstCol := -1, -1, -1
	if v.schema.FullNameField != "" {
		fullCol = column(v.schema.FullNameField)
		lastCol = column(v.schema.LastNameField)
		firstCol = column(v.schema.FirstNameField)
	}

	if !result.IsValid {
		return result
	}

	for i, row := range table.Rows {
		rowNum := i + 1

		for j, col := range intCols {
			cell := row.At(col)
			if cell.Kind != types.Integer {
				result.add(&ValidationError{
					Field:     v.schema.IntegerFields[j],
					Value:     cell.Text(),
					Rule:      RuleInteger,
					Message:   "value is not a whole number",
					RowNumber: rowNum,
				})
			}
		}

		if varietalCol >= 0 {
			name := row.At(varietalCol).Text()
			if !v.varietals.IsVarietal(name) {
				result.add(&ValidationError{
					Field:     v.schema.VarietalField,
					Value:     name,
					Rule:      RuleVarietal,
					Message:   "varietal is not in the SKU list",
					RowNumber: rowNum,
				})
			}
		}

		if fullCol >= 0 {
			want := row.At(lastCol).Text() + ", " + row.At(firstCol).Text()
			if got := row.At(fullCol).Text(); got != want {
				result.add(&ValidationError{
					Field:     v.schema.FullNameField,
					Value:     got,
					Rule:      RuleFullName,
					Message:   fmt.Sprintf("expected %q", want),
					RowNumber: rowNum,
				})
			}
		}
	}

	return result
}

func (r *ValidationResult) add(err *ValidationError) {
	r.Errors = append(r.Errors, err)
	r.IsValid = false
}
