package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lacquerai/archetype/internal/catalog"
	"gopkg.in/yaml.v3"
)

// ParseError represents a parsing error with context
type ParseError struct {
	Message    string           `json:"message"`
	Position   catalog.Position `json:"position"`
	Context    string           `json:"context,omitempty"`
	Suggestion string           `json:"suggestion,omitempty"`
	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface
func (e *ParseError) Error() string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("parse error at %s: %s", e.Position.String(), e.Message))

	if e.Suggestion != "" {
		result.WriteString(fmt.Sprintf("\nSuggestion: %s", e.Suggestion))
	}

	if e.Context != "" {
		result.WriteString(fmt.Sprintf("\n\nContext:\n%s", e.Context))
	}

	return result.String()
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// MultiError represents multiple parsing or validation errors
type MultiError struct {
	Errors []error `json:"errors"`
}

// Error implements the error interface for MultiError
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("multiple errors (%d):\n", len(e.Errors)))

	for i, err := range e.Errors {
		result.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}

	return result.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// Add adds an error to the MultiError
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (e *MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns the MultiError as an error if there are errors, nil otherwise
func (e *MultiError) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// wrapYAMLError converts a yaml.v3 error into ParseErrors carrying the
// offending line and a few lines of surrounding source.
func wrapYAMLError(err error, source []byte, filename string) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		var multi MultiError
		for _, msg := range typeErr.Errors {
			multi.Add(newParseError(cleanYAMLMessage(msg), positionFromMessage(msg, filename), source))
		}
		return multi.ToError()
	}

	return newParseError(cleanYAMLMessage(err.Error()), positionFromMessage(err.Error(), filename), source)
}

func newParseError(message string, pos catalog.Position, source []byte) *ParseError {
	return &ParseError{
		Message:    message,
		Position:   pos,
		Context:    catalog.ExtractContext(source, pos, 2),
		Suggestion: generateSuggestion(message),
	}
}

// positionFromMessage extracts "line N" from yaml error messages
func positionFromMessage(message, filename string) catalog.Position {
	pos := catalog.Position{Line: 1, Column: 1, File: filename}
	if m := yamlLineRe.FindStringSubmatch(message); m != nil {
		if line, err := strconv.Atoi(m[1]); err == nil {
			pos.Line = line
		}
	}
	return pos
}

func cleanYAMLMessage(message string) string {
	message = strings.TrimPrefix(message, "yaml: ")
	if loc := yamlLineRe.FindStringIndex(message); loc != nil && loc[0] == 0 {
		message = strings.TrimLeft(message[loc[1]:], ": ")
	}
	return message
}

// generateSuggestion returns a short hint for common mistakes
func generateSuggestion(message string) string {
	message = strings.ToLower(message)

	switch {
	case strings.Contains(message, "indent") || strings.Contains(message, "mapping values are not allowed"):
		return "YAML requires consistent indentation using spaces; quote text containing ': '"
	case strings.Contains(message, "cannot unmarshal"):
		return "check the value type; scale values are integers, option tokens are strings and rankings are lists"
	case strings.Contains(message, "version"):
		return "set version: \"1.0\" at the top of the file"
	case strings.Contains(message, "unknown category"):
		return "declare the category under categories or fix the spelling"
	case strings.Contains(message, "additionalproperties"):
		return "remove the unexpected field or check its spelling"
	case strings.Contains(message, "missing properties"):
		return "add the required field"
	case strings.Contains(message, "unknown question"):
		return "answers are keyed by question id; run 'arq questions' to list them"
	default:
		return ""
	}
}
