package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/parser/schema"
	"gopkg.in/yaml.v3"
)

// maxFileSize bounds catalog and answer files
const maxFileSize = 10 * 1024 * 1024

// Parser interface defines the contract for catalog parsing
type Parser interface {
	ParseFile(filename string) (*catalog.Catalog, error)
	ParseBytes(data []byte) (*catalog.Catalog, error)
	ParseReader(r io.Reader) (*catalog.Catalog, error)
	ValidateOnly(data []byte) error
	SetStrict(strict bool)
}

// YAMLParser implements the Parser interface using go-yaml/v3
type YAMLParser struct {
	validator *schema.Validator
	strict    bool
}

// ParserOption configures the YAML parser
type ParserOption func(*YAMLParser)

// WithStrict controls whether semantic catalog errors fail the parse.
// Structural (schema) errors always do.
func WithStrict(strict bool) ParserOption {
	return func(p *YAMLParser) {
		p.strict = strict
	}
}

// WithValidator sets a custom schema validator
func WithValidator(validator *schema.Validator) ParserOption {
	return func(p *YAMLParser) {
		p.validator = validator
	}
}

// NewYAMLParser creates a new YAML parser with the given options
func NewYAMLParser(opts ...ParserOption) (*YAMLParser, error) {
	parser := &YAMLParser{
		strict: true,
	}

	for _, opt := range opts {
		opt(parser)
	}

	if parser.validator == nil {
		validator, err := schema.NewValidator()
		if err != nil {
			return nil, fmt.Errorf("failed to create schema validator: %w", err)
		}
		parser.validator = validator
	}

	return parser, nil
}

// SetStrict enables or disables strict parsing mode
func (p *YAMLParser) SetStrict(strict bool) {
	p.strict = strict
}

// ParseFile parses a catalog file
func (p *YAMLParser) ParseFile(filename string) (*catalog.Catalog, error) {
	if !IsCatalogFile(filename) {
		return nil, fmt.Errorf("invalid file extension: expected %s, got %s",
			strings.Join(GetSupportedExtensions(), " or "), filepath.Base(filename))
	}

	data, err := readFile(filename)
	if err != nil {
		return nil, err
	}

	c, err := p.parse(data, filename)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	c.SourceFile = filename
	return c, nil
}

// ParseBytes parses catalog data from bytes
func (p *YAMLParser) ParseBytes(data []byte) (*catalog.Catalog, error) {
	return p.parse(data, "")
}

// ParseReader parses catalog data from a reader
func (p *YAMLParser) ParseReader(r io.Reader) (*catalog.Catalog, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("input too large (max 10MB)")
	}

	return p.ParseBytes(data)
}

// ParseBuiltin parses the embedded Designer Archetype catalog
func (p *YAMLParser) ParseBuiltin() (*catalog.Catalog, error) {
	c, err := p.parse(catalog.BuiltinSource(), catalog.BuiltinFile)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in catalog: %w", err)
	}
	c.SourceFile = catalog.BuiltinFile
	return c, nil
}

// ValidateOnly runs syntax, schema and semantic checks without returning
// the catalog
func (p *YAMLParser) ValidateOnly(data []byte) error {
	strict := p.strict
	p.strict = true
	defer func() { p.strict = strict }()

	_, err := p.parse(data, "")
	return err
}

func (p *YAMLParser) parse(data []byte, filename string) (*catalog.Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{
			Message:    "empty catalog file",
			Position:   catalog.Position{Line: 1, Column: 1, File: filename},
			Suggestion: "start with version: \"1.0\" followed by categories and questions",
		}
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, wrapYAMLError(err, data, filename)
	}
	index := newPositionIndex(&node, filename)

	if p.validator != nil {
		if err := p.validateSchema(data, index); err != nil {
			return nil, err
		}
	}

	var c catalog.Catalog
	if err := node.Decode(&c); err != nil {
		return nil, wrapYAMLError(err, data, filename)
	}

	c.Position = index.lookup("")
	for _, q := range c.Questions {
		if q != nil {
			q.Position = index.lookup(joinPath("questions", q.ID))
		}
	}

	if p.strict {
		if err := semanticErrors(catalog.NewValidator().ValidateCatalog(&c), index, data); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// validateSchema validates the document against the catalog schema
func (p *YAMLParser) validateSchema(data []byte, index *positionIndex) error {
	result, err := p.validator.ValidateBytes(data)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if result.Valid {
		return nil
	}

	var multiErr MultiError
	for _, validationErr := range result.Errors {
		multiErr.Add(newParseError(validationErr.Message, index.lookup(validationErr.Path), data))
	}
	return multiErr.ToError()
}

// semanticErrors converts catalog validation errors into positioned
// ParseErrors
func semanticErrors(result *catalog.ValidationResult, index *positionIndex, source []byte) error {
	if !result.HasErrors() {
		return nil
	}

	var multiErr MultiError
	for _, ve := range result.Errors {
		multiErr.Add(newParseError(ve.Error(), index.lookupField(ve.Path, ve.Field), source))
	}
	return multiErr.ToError()
}

func readFile(filename string) ([]byte, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max 10MB)", info.Size())
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, nil
}

// IsCatalogFile checks if the filename has a catalog extension
func IsCatalogFile(filename string) bool {
	base := strings.ToLower(filepath.Base(filename))
	for _, ext := range GetSupportedExtensions() {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			return true
		}
	}
	return false
}

// GetSupportedExtensions returns the list of supported file extensions
func GetSupportedExtensions() []string {
	return []string{".arq.yaml", ".arq.yml"}
}
