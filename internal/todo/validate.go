package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the error location
	Err  error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the bundled JSON Schema.
	// Ignored for CSV stores, which have no schema.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Validate checks the store file on disk. JSON stores are validated
// against a JSON Schema (the bundled one unless opts.SchemaPath points
// elsewhere), falling back to minimal structural checks when no schema
// can be compiled. CSV stores are validated by decoding.
func (s *Store) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("read todos file: %w", err))
		return result
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		result.Warnings = append(result.Warnings, "store file is empty")
		return result
	}

	if s.Codec.Name() == "csv" {
		validateCSV(data, result)
		return result
	}

	schemaResult := validateWithSchema(data, opts.SchemaPath)
	result.UsedSchema = schemaResult.UsedSchema
	result.Warnings = append(result.Warnings, schemaResult.Warnings...)
	if schemaResult.UsedSchema {
		if !schemaResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, schemaResult.Errors...)
		}
		appendIndexWarnings(data, result)
		return result
	}

	// Schema validation not available, fall through to minimal checks
	result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	validateMinimalJSON(data, result)
	appendIndexWarnings(data, result)
	return result
}

// validateWithSchema attempts JSON Schema validation of the raw store
// document.
func validateWithSchema(data []byte, schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:      true,
		Errors:     make([]error, 0),
		Warnings:   make([]string, 0),
		UsedSchema: false,
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var schema *jsonschema.Schema
	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
			return result
		}
		if _, err := os.Stat(absPath); err != nil {
			if os.IsNotExist(err) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read schema file: %v", err))
			}
			return result
		}
		schema, err = compiler.Compile(absPath)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
			return result
		}
	} else {
		if err := compiler.AddResource("todos.schema.json", strings.NewReader(bundledStoreSchema)); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid bundled schema: %v", err))
			return result
		}
		var err error
		schema, err = compiler.Compile("todos.schema.json")
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid bundled schema: %v", err))
			return result
		}
	}

	result.UsedSchema = true

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("parse todos file: %w", err),
		})
		return result
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	return result
}

// validateMinimalJSON performs minimal validation without JSON Schema.
func validateMinimalJSON(data []byte, result *ValidationResult) {
	var doc jsonFile
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("parse todos file: %w", err),
		})
		return
	}

	if doc.SchemaVersion != SchemaVersion {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected %d, got %d", SchemaVersion, doc.SchemaVersion),
		})
	}

	if doc.Items == nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "items",
			Err:  fmt.Errorf("missing required field"),
		})
		return
	}

	for i, rec := range doc.Items {
		if rec.Text == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("items[%d].text", i),
				Err:  fmt.Errorf("missing required field"),
			})
		}
		if rec.Index < 0 {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("items[%d].index", i),
				Err:  fmt.Errorf("must not be negative, got %d", rec.Index),
			})
		}
	}
}

// validateCSV validates a CSV store by decoding it.
func validateCSV(data []byte, result *ValidationResult) {
	items, err := CSV.Decode(data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("parse todos file: %w", err))
		return
	}
	for i := range items {
		if items[i].Text == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("row %d: text", i+1),
				Err:  fmt.Errorf("missing required field"),
			})
		}
	}
}

// appendIndexWarnings flags stored index values that disagree with the
// record's position. The index field is advisory, so a mismatch is only
// cosmetic, but it usually means the file was edited by hand.
func appendIndexWarnings(data []byte, result *ValidationResult) {
	var doc jsonFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return
	}
	for i, rec := range doc.Items {
		if rec.Index != i {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("items[%d].index: stored value %d does not match position %d", i, rec.Index, i))
		}
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
