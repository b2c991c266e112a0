package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todolist-go/internal/utils"
)

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

// ParseError reports a persisted blob that could not be turned into tasks.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse tasks: %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("parse tasks: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // false when the embedded schema failed to compile
	TaskCount  int
}

func (r *ValidationResult) fail(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(SchemaURL, strings.NewReader(Schema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(SchemaURL)
	})
	return compiledSchema, schemaErr
}

// Validate checks a persisted blob and reports every problem found.
func Validate(data []byte) *ValidationResult {
	result, _ := validate(data)
	return result
}

// DecodeTasks parses a persisted blob. Any validation failure is returned
// as a *ParseError describing the first problem.
func DecodeTasks(data []byte) ([]Task, error) {
	result, tasks := validate(data)
	if !result.Valid {
		err := result.Errors[0]
		var ve *ValidationError
		if errors.As(err, &ve) {
			return nil, &ParseError{Path: ve.Path, Err: ve.Err}
		}
		return nil, &ParseError{Err: err}
	}
	return tasks, nil
}

// EncodeTasks serializes the full collection. A nil slice encodes as [].
func EncodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

func validate(data []byte) (*ValidationResult, []Task) {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		result.fail("", fmt.Errorf("empty document"))
		return result, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail("", fmt.Errorf("invalid JSON: %w", err))
		return result, nil
	}

	schema, err := loadSchema()
	if err == nil {
		result.UsedSchema = true
		if err := schema.Validate(doc); err != nil {
			appendSchemaErrors(result, err)
			return result, nil
		}
	} else {
		result.Warnings = append(result.Warnings, fmt.Sprintf("JSON Schema validation not available, using minimal checks: %v", err))
		if !validateMinimal(doc, result) {
			return result, nil
		}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		result.fail("", err)
		return result, nil
	}

	tasks := make([]Task, 0, len(raws))
	seen := make(map[string]int, len(raws))
	for i, raw := range raws {
		path := fmt.Sprintf("[%d]", i)
		var task Task
		if err := json.Unmarshal(raw, &task); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				result.fail(path+"."+ve.Path, ve.Err)
			} else {
				result.fail(path, err)
			}
			continue
		}
		if first, ok := seen[task.ID]; ok {
			result.fail(path+".id", fmt.Errorf("duplicate id %q (first at [%d])", task.ID, first))
			continue
		}
		seen[task.ID] = i
		if strings.TrimSpace(task.Title) == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.title: empty title", path))
		}
		tasks = append(tasks, task)
	}
	result.TaskCount = len(tasks)

	if !result.Valid {
		return result, nil
	}
	return result, tasks
}

// validateMinimal performs structural checks without JSON Schema.
func validateMinimal(doc any, result *ValidationResult) bool {
	items, ok := doc.([]any)
	if !ok {
		result.fail("", fmt.Errorf("expected array"))
		return false
	}
	for i, item := range items {
		path := fmt.Sprintf("[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			result.fail(path, fmt.Errorf("expected object"))
			continue
		}
		if id, ok := obj["id"].(string); !ok || id == "" {
			result.fail(path+".id", fmt.Errorf("missing required field"))
		}
		if _, ok := obj["title"].(string); !ok {
			result.fail(path+".title", fmt.Errorf("missing required field"))
		}
		if _, ok := obj["completed"].(bool); !ok {
			result.fail(path+".completed", fmt.Errorf("missing required field"))
		}
		if v, ok := obj["description"]; ok {
			if _, ok := v.(string); !ok {
				result.fail(path+".description", fmt.Errorf("must be a string"))
			}
		}
	}
	return result.Valid
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.fail("", err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.fail(utils.JSONPointerToPath(err.InstanceLocation), fmt.Errorf("%s", err.Message))
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
