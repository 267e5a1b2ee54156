package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "https://schemas.archetype.dev/v1.0/catalog.json"

// Validator validates catalog documents against the JSON schema generated
// from the catalog types.
type Validator struct {
	schema *jsonschema.Schema
}

// ValidationError represents a validation error with context
type ValidationError struct {
	Message string `json:"message"`
	// Path is the JSON pointer of the offending value, "/" for the root.
	Path string `json:"path"`
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidator compiles the catalog schema
func NewValidator() (*Validator, error) {
	schemaData, err := catalog.NewSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaData)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// ValidateFile validates a catalog file
func (v *Validator) ValidateFile(filename string) (*ValidationResult, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return v.ValidateBytes(data)
}

// ValidateBytes validates YAML (or JSON) catalog data
func (v *Validator) ValidateBytes(data []byte) (*ValidationResult, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Message: fmt.Sprintf("YAML parsing error: %v", err),
				Path:    "/",
			}},
		}, nil
	}

	instance, err := toJSONValue(doc)
	if err != nil {
		return nil, err
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var validationErrors []ValidationError
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		validationErrors = v.convertValidationErrors(validationErr)
	} else {
		validationErrors = []ValidationError{{
			Message: err.Error(),
			Path:    "/",
		}}
	}

	return &ValidationResult{
		Valid:  false,
		Errors: validationErrors,
	}, nil
}

// convertValidationErrors flattens the cause tree to its leaves, which carry
// the specific messages.
func (v *Validator) convertValidationErrors(err *jsonschema.ValidationError) []ValidationError {
	if len(err.Causes) == 0 {
		path := err.InstanceLocation
		if path == "" {
			path = "/"
		}
		return []ValidationError{{Message: err.Message, Path: path}}
	}

	var errors []ValidationError
	for _, cause := range err.Causes {
		errors = append(errors, v.convertValidationErrors(cause)...)
	}
	sort.SliceStable(errors, func(i, j int) bool {
		return errors[i].Path < errors[j].Path
	})
	return errors
}

// toJSONValue converts a yaml.v3 document into the value space the schema
// validator understands: string keyed objects and json.Number numbers.
// Scale scoring tables use integer keys, which yaml.v3 decodes into
// map[interface{}]interface{}.
func toJSONValue(doc interface{}) (interface{}, error) {
	raw, err := json.Marshal(normalizeKeys(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to convert document: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to convert document: %w", err)
	}
	return out, nil
}

func normalizeKeys(v interface{}) interface{} {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = normalizeKeys(val)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, val := range x {
			m[k] = normalizeKeys(val)
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, val := range x {
			out[i] = normalizeKeys(val)
		}
		return out
	default:
		return v
	}
}
