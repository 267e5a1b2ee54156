package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/stoewer/go-strcase"
)

//go:embed types.go
var typesGoFile embed.FS

// CustomReflector extends the default reflector with catalog-specific naming
// and doc comments pulled from types.go.
type CustomReflector struct {
	*jsonschema.Reflector
}

// NewCustomReflector creates a reflector producing snake_case definitions
func NewCustomReflector() *CustomReflector {
	r := &jsonschema.Reflector{
		KeyNamer: strcase.SnakeCase,
		Namer: func(t reflect.Type) string {
			return strcase.SnakeCase(t.Name())
		},
		ExpandedStruct: true,
		Anonymous:      true,
	}

	return &CustomReflector{Reflector: r}
}

// NewSchema returns the JSON schema of a catalog file, indented.
func NewSchema() ([]byte, error) {
	reflector := NewCustomReflector()
	if err := reflector.extractGoComments(reflect.TypeOf(Catalog{}).PkgPath()); err != nil {
		return nil, err
	}

	fullSchema := reflector.Reflect(&Catalog{})
	fullSchema.Title = "archetype catalog"
	return json.MarshalIndent(fullSchema, "", "  ")
}

// JSONSchema restricts kind to the supported values.
func (Kind) JSONSchema() *jsonschema.Schema {
	enum := make([]any, len(Kinds))
	for i, k := range Kinds {
		enum[i] = string(k)
	}
	return &jsonschema.Schema{
		Type: "string",
		Enum: enum,
	}
}

// JSONSchema describes a category -> points mapping.
func (Points) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		AdditionalProperties: &jsonschema.Schema{
			Type:    "number",
			Minimum: json.Number("0"),
		},
	}
}

// JSONSchema describes the scale table. Keys are integers, which YAML and
// JSON both carry as object keys.
func (ScaleScoring) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		PatternProperties: map[string]*jsonschema.Schema{
			"^-?[0-9]+$": Points(nil).JSONSchema(),
		},
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func (r *CustomReflector) extractGoComments(pkg string) error {
	commentMap := make(map[string]string)
	fset := token.NewFileSet()
	typesFile, err := typesGoFile.ReadFile("types.go")
	if err != nil {
		return err
	}

	f, err := parser.ParseFile(fset, "types.go", typesFile, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parsing catalog types: %w", err)
	}

	gtxt := ""
	typ := ""
	ast.Inspect(f, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.TypeSpec:
			typ = x.Name.String()
			if !ast.IsExported(typ) {
				typ = ""
			} else {
				txt := x.Doc.Text()
				if txt == "" && gtxt != "" {
					txt = gtxt
					gtxt = ""
				}

				commentMap[fmt.Sprintf("%s.%s", pkg, typ)] = strings.TrimSpace(txt)
			}
		case *ast.Field:
			txt := x.Doc.Text()
			if txt == "" {
				txt = x.Comment.Text()
			}
			if typ != "" && txt != "" {
				for _, n := range x.Names {
					if ast.IsExported(n.String()) {
						k := fmt.Sprintf("%s.%s.%s", pkg, typ, n)
						commentMap[k] = strings.TrimSpace(txt)
					}
				}
			}
		case *ast.GenDecl:
			// remember for the next type
			gtxt = x.Doc.Text()
		}
		return true
	})

	r.CommentMap = commentMap

	return nil
}
