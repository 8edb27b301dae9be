// Package todo models the task list and its on-disk JSON form.
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

// Task represents a single entry in the todo list.
type Task struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// List is an ordered collection of tasks. The on-disk form is a bare JSON
// array of task objects.
type List []Task

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
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
	// SchemaPath is the path to the JSON Schema file.
	// If empty, validation uses the bundled schema.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Load reads and parses a todo file from path.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}

	return l, nil
}

// LoadOrEmpty reads the todo file at path, recovering from any failure with
// an empty list. A missing file is created on disk as an empty list;
// malformed content yields an empty list without modifying the file.
func LoadOrEmpty(path string) List {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Best effort; the next save rewrites the file anyway.
			_ = List{}.Save(path)
		}
		return List{}
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return List{}
	}
	if l == nil {
		return List{}
	}

	return l
}

// Save writes the todo file to path with 2-space indentation, replacing the
// previous contents entirely.
func (l List) Save(path string) error {
	if l == nil {
		l = List{}
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todo file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}

	return nil
}

// Add appends a task with the given text, trimmed of surrounding whitespace.
// Returns false without modifying the list when the trimmed text is empty.
func (l *List) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	*l = append(*l, Task{Text: text})
	return true
}

// Toggle flips the done state of the task at index i.
// Out-of-range indexes are a no-op and return false.
func (l *List) Toggle(i int) bool {
	if i < 0 || i >= len(*l) {
		return false
	}
	(*l)[i].Done = !(*l)[i].Done
	return true
}

// Remove deletes the task at index i and returns it.
// Out-of-range indexes are a no-op and return false.
func (l *List) Remove(i int) (Task, bool) {
	if i < 0 || i >= len(*l) {
		return Task{}, false
	}
	t := (*l)[i]
	*l = append((*l)[:i], (*l)[i+1:]...)
	return t, true
}

// ClampIndex clamps i into the valid selection range [0, len-1],
// or 0 for an empty list.
func (l List) ClampIndex(i int) int {
	if len(l) == 0 || i < 0 {
		return 0
	}
	if i >= len(l) {
		return len(l) - 1
	}
	return i
}

// Validate validates the todo list. A schema file is preferred when one is
// available; the bundled schema covers the rest, with minimal structural
// checks as a last resort.
func (l List) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if opts.SchemaPath != "" {
		schemaResult := validateWithSchemaFile(l, opts.SchemaPath)
		mergeSchemaResult(result, schemaResult)
		if schemaResult.UsedSchema {
			return result
		}
	}

	schemaResult := validateWithBundledSchema(l)
	mergeSchemaResult(result, schemaResult)
	if schemaResult.UsedSchema {
		return result
	}

	// Minimal fallback checks
	result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	l.validateMinimal(result)

	return result
}

// mergeSchemaResult folds a schema validation attempt into result.
func mergeSchemaResult(result, schemaResult *ValidationResult) {
	result.UsedSchema = schemaResult.UsedSchema
	if len(schemaResult.Warnings) > 0 {
		result.Warnings = append(result.Warnings, schemaResult.Warnings...)
	}
	if schemaResult.UsedSchema && !schemaResult.Valid {
		result.Valid = false
		result.Errors = append(result.Errors, schemaResult.Errors...)
	}
}

// validateMinimal performs minimal validation without JSON Schema.
func (l List) validateMinimal(result *ValidationResult) {
	for i := range l {
		if l[i].Text == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("[%d].text", i),
				Err:  fmt.Errorf("must not be empty"),
			})
		}
	}
}

// validateWithSchemaFile attempts JSON Schema validation against a schema
// file on disk.
func validateWithSchemaFile(l List, schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:      true,
		Errors:     make([]error, 0),
		Warnings:   make([]string, 0),
		UsedSchema: false,
	}

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

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(absPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
		return result
	}

	validateAgainst(result, schema, l)
	return result
}

// validateWithBundledSchema validates against the built-in schema.
func validateWithBundledSchema(l List) *ValidationResult {
	result := &ValidationResult{
		Valid:      true,
		Errors:     make([]error, 0),
		Warnings:   make([]string, 0),
		UsedSchema: false,
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(bundledSchemaName, strings.NewReader(bundledSchema)); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid bundled schema: %v", err))
		return result
	}

	schema, err := compiler.Compile(bundledSchemaName)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid bundled schema: %v", err))
		return result
	}

	validateAgainst(result, schema, l)
	return result
}

// validateAgainst runs a compiled schema over the list.
func validateAgainst(result *ValidationResult, schema *jsonschema.Schema, l List) {
	result.UsedSchema = true

	// Marshal the list back to JSON for validation
	listData, err := json.Marshal(l)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "",
			Err:  fmt.Errorf("failed to marshal list for validation: %w", err),
		})
		return
	}

	var listObj interface{}
	if err := json.Unmarshal(listData, &listObj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "",
			Err:  fmt.Errorf("failed to unmarshal list for validation: %w", err),
		})
		return
	}

	if err := schema.Validate(listObj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
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
	if ptr == "" {
		return ""
	}
	if strings.HasPrefix(ptr, "#") {
		ptr = strings.TrimPrefix(ptr, "#")
	}
	if strings.HasPrefix(ptr, "/") {
		ptr = ptr[1:]
	}
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
