// Package schema provides access to the archetype catalog schema.
//
// The JSON schema describes every field of a *.arq.yaml catalog file and is
// the same schema the arq CLI validates catalogs against. It is useful for:
//   - Editor completion and inline validation through a YAML language server
//   - Validating catalogs in other tools or CI pipelines
//   - Generating documentation for catalog authors
//
// Example usage:
//
//	s, err := schema.GetSchema()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	var catalogSchema map[string]interface{}
//	json.Unmarshal(s.Schema, &catalogSchema)
//
//	for _, kind := range s.QuestionKinds {
//		fmt.Println(kind)
//	}
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/lacquerai/archetype/internal/catalog"
)

// SchemaOutput represents the complete schema information for catalog files.
type SchemaOutput struct {
	// Schema contains the JSON Schema definition for catalog files.
	Schema json.RawMessage `json:"schema"`
	// Version is the catalog file format version the schema describes, the
	// value of the top-level version field.
	Version string `json:"version"`
	// QuestionKinds lists the supported question kinds in documentation
	// order.
	QuestionKinds []string `json:"question_kinds"`
}

// GetSchema returns the JSON schema of catalog files together with the
// format version and question kinds it covers.
//
// The schema is generated from the catalog types on each call. Errors only
// occur if the schema cannot be generated or marshalled.
//
// Example:
//
//	s, err := schema.GetSchema()
//	if err != nil {
//		return fmt.Errorf("failed to get schema: %w", err)
//	}
//	fmt.Printf("catalog format %s supports %v\n", s.Version, s.QuestionKinds)
func GetSchema() (*SchemaOutput, error) {
	schemaBytes, err := catalog.NewSchema()
	if err != nil {
		return nil, fmt.Errorf("error creating catalog schema: %w", err)
	}

	kinds := make([]string, len(catalog.Kinds))
	for i, k := range catalog.Kinds {
		kinds[i] = string(k)
	}

	return &SchemaOutput{
		Schema:        json.RawMessage(schemaBytes),
		Version:       catalog.SupportedVersion,
		QuestionKinds: kinds,
	}, nil
}
