package catalog

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersion is the only catalog file format version understood.
const SupportedVersion = "1.0"

var (
	identifierRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	kebabCaseRe  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	if ve.Path != "" && ve.Field != "" {
		return fmt.Sprintf("%s.%s: %s", ve.Path, ve.Field, ve.Message)
	}
	if ve.Path != "" {
		return fmt.Sprintf("%s: %s", ve.Path, ve.Message)
	}
	if ve.Field != "" {
		return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
	}
	return ve.Message
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	Valid  bool               `json:"valid"`
	Errors []*ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error
func (vr *ValidationResult) AddError(path, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, &ValidationError{
		Path:    path,
		Message: message,
	})
}

// AddFieldError adds a validation error for a specific field
func (vr *ValidationResult) AddFieldError(path, field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, &ValidationError{
		Path:    path,
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ToError returns a combined error if there are validation errors
func (vr *ValidationResult) ToError() error {
	if !vr.HasErrors() {
		return nil
	}

	var messages []string
	for _, err := range vr.Errors {
		messages = append(messages, err.Error())
	}

	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator checks the semantic invariants of a catalog that a JSON schema
// cannot express: unique identifiers, category references and scale domains.
type Validator struct{}

// NewValidator creates a new catalog validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate is shorthand for NewValidator().ValidateCatalog(c).ToError().
func (c *Catalog) Validate() error {
	return NewValidator().ValidateCatalog(c).ToError()
}

// ValidateCatalog performs comprehensive validation of a catalog
func (v *Validator) ValidateCatalog(c *Catalog) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if c.Version != SupportedVersion {
		result.AddFieldError("", "version", fmt.Sprintf("unsupported version: %q", c.Version))
	}

	if c.Metadata != nil {
		v.validateMetadata(c.Metadata, "metadata", result)
	}

	categories := v.validateCategories(c.Categories, "categories", result)

	if len(c.Questions) == 0 {
		result.AddError("questions", "at least one question is required")
		return result
	}

	seen := make(map[string]bool, len(c.Questions))
	for i, q := range c.Questions {
		path := fmt.Sprintf("questions[%d]", i)
		if q == nil {
			result.AddError(path, "question must not be empty")
			continue
		}
		if q.ID != "" {
			path = fmt.Sprintf("questions.%s", q.ID)
			if seen[q.ID] {
				result.AddFieldError(path, "id", fmt.Sprintf("duplicate question ID: %s", q.ID))
			}
			seen[q.ID] = true
		}
		v.validateQuestion(q, path, categories, result)
	}

	return result
}

// validateMetadata validates survey metadata
func (v *Validator) validateMetadata(metadata *Metadata, path string, result *ValidationResult) {
	if metadata.Name == "" {
		result.AddFieldError(path, "name", "name is required")
	} else if !kebabCaseRe.MatchString(metadata.Name) {
		result.AddFieldError(path, "name", "name must be in kebab-case format")
	}

	if metadata.Version != "" {
		if _, err := semver.StrictNewVersion(metadata.Version); err != nil {
			result.AddFieldError(path, "version", "version must follow semantic versioning")
		}
	}
}

// validateCategories validates the category set and returns it as a lookup
func (v *Validator) validateCategories(categories []*Category, path string, result *ValidationResult) map[string]bool {
	set := make(map[string]bool, len(categories))

	if len(categories) == 0 {
		result.AddError(path, "at least one category is required")
		return set
	}

	for i, category := range categories {
		categoryPath := fmt.Sprintf("%s[%d]", path, i)
		if category == nil || strings.TrimSpace(category.Name) == "" {
			result.AddFieldError(categoryPath, "name", "name is required")
			continue
		}
		if set[category.Name] {
			result.AddFieldError(categoryPath, "name", fmt.Sprintf("duplicate category: %s", category.Name))
		}
		set[category.Name] = true
	}

	return set
}

// validateQuestion validates a single question
func (v *Validator) validateQuestion(q *Question, path string, categories map[string]bool, result *ValidationResult) {
	if q.ID == "" {
		result.AddFieldError(path, "id", "id is required")
	} else if !identifierRe.MatchString(q.ID) {
		result.AddFieldError(path, "id", "id must start with a letter and contain only letters, digits, '_' or '-'")
	}

	if strings.TrimSpace(q.Text) == "" {
		result.AddFieldError(path, "text", "text is required")
	}

	switch q.Kind {
	case KindScale:
		v.validateScale(q, path, categories, result)
	case KindSingleChoice, KindRanking:
		v.validateOptions(q, path, categories, result)
	case "":
		result.AddFieldError(path, "kind", "kind is required")
	default:
		result.AddFieldError(path, "kind", fmt.Sprintf("kind must be one of: %v", Kinds))
	}
}

// validateScale validates the domain and scoring table of a scale question
func (v *Validator) validateScale(q *Question, path string, categories map[string]bool, result *ValidationResult) {
	if len(q.Options) > 0 {
		result.AddFieldError(path, "options", "scale questions cannot define options")
	}

	if q.Scale == nil {
		result.AddFieldError(path, "scale", "scale questions require a scale range")
		return
	}

	if q.Scale.Min >= q.Scale.Max {
		result.AddFieldError(path, "scale", fmt.Sprintf("min (%d) must be less than max (%d)", q.Scale.Min, q.Scale.Max))
		return
	}

	values := make([]int, 0, len(q.Scoring))
	for value := range q.Scoring {
		values = append(values, value)
	}
	sort.Ints(values)

	for _, value := range values {
		entryPath := fmt.Sprintf("%s.scoring.%d", path, value)
		if !q.Scale.Contains(value) {
			result.AddError(entryPath, fmt.Sprintf("value is outside the scale range [%d, %d]", q.Scale.Min, q.Scale.Max))
		}
		v.validatePoints(q.Scoring[value], entryPath, categories, result)
	}
}

// validateOptions validates the options of a single-choice or ranking question
func (v *Validator) validateOptions(q *Question, path string, categories map[string]bool, result *ValidationResult) {
	if q.Scale != nil || len(q.Scoring) > 0 {
		result.AddFieldError(path, "scale", fmt.Sprintf("%s questions cannot define a scale or scoring table", q.Kind))
	}

	if len(q.Options) == 0 {
		result.AddFieldError(path, "options", fmt.Sprintf("%s questions require at least one option", q.Kind))
		return
	}

	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		optionPath := fmt.Sprintf("%s.options[%d]", path, i)
		if opt == nil {
			result.AddError(optionPath, "option must not be empty")
			continue
		}
		if opt.Value == "" {
			result.AddFieldError(optionPath, "value", "value is required")
		} else {
			optionPath = fmt.Sprintf("%s.options.%s", path, opt.Value)
			if seen[opt.Value] {
				result.AddFieldError(optionPath, "value", fmt.Sprintf("duplicate option value: %s", opt.Value))
			}
			seen[opt.Value] = true
		}
		if strings.TrimSpace(opt.Text) == "" {
			result.AddFieldError(optionPath, "text", "text is required")
		}
		v.validatePoints(opt.Scores, optionPath+".scores", categories, result)
	}
}

// validatePoints checks that every key is a declared category and every
// value is a finite, non-negative number
func (v *Validator) validatePoints(points Points, path string, categories map[string]bool, result *ValidationResult) {
	names := make([]string, 0, len(points))
	for name := range points {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !categories[name] {
			result.AddError(path, fmt.Sprintf("unknown category: %s", name))
		}
		p := points[name]
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			result.AddError(path, fmt.Sprintf("points for %s must be a non-negative number", name))
		}
	}
}
