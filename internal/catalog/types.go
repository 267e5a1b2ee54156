package catalog

import (
	"fmt"
	"strings"
)

// Position represents a position in a source file
type Position struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
	File   string `json:"file,omitempty"`
}

// String returns a human-readable representation of the position
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ExtractContext extracts contextual lines around a position for error reporting
func ExtractContext(source []byte, position Position, contextLines int) string {
	lines := strings.Split(string(source), "\n")

	if position.Line <= 0 || position.Line > len(lines) {
		return ""
	}

	start := max(0, position.Line-contextLines-1)
	end := min(len(lines), position.Line+contextLines)

	var context strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		prefix := "   "
		if lineNum == position.Line {
			prefix = ">> "
		}

		context.WriteString(fmt.Sprintf("%s%4d | %s\n", prefix, lineNum, lines[i]))
	}

	return context.String()
}

// Kind identifies how a question is answered and scored.
type Kind string

const (
	// KindScale is a single integer rating inside a bounded range.
	KindScale Kind = "scale"
	// KindSingleChoice is one selection from a fixed option list.
	KindSingleChoice Kind = "single-choice"
	// KindRanking is a full ordering of a fixed option list.
	KindRanking Kind = "ranking"
)

// Kinds lists every supported question kind in documentation order.
var Kinds = []Kind{KindScale, KindSingleChoice, KindRanking}

// Catalog is the root of an archetype survey definition. It is loaded
// once and treated as read-only afterwards.
type Catalog struct {
	// Version is the catalog file format version. Only "1.0" is supported.
	Version string `yaml:"version" json:"version"`
	// Metadata describes the survey.
	Metadata *Metadata `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	// Categories is the closed set of archetypes a respondent is scored
	// against. Declaration order breaks ties in the ranked result.
	Categories []*Category `yaml:"categories" json:"categories"`
	// Questions are presented and scored in declaration order.
	Questions []*Question `yaml:"questions" json:"questions"`

	SourceFile string   `yaml:"-" json:"-"`
	Position   Position `yaml:"-" json:"-"`
}

// Metadata contains descriptive information about the survey
type Metadata struct {
	// Name is the kebab-case identifier of the survey.
	Name string `yaml:"name" json:"name"`
	// Title is shown as the survey heading.
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	// Description is shown before the first question.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Version is the semantic version of the question set. Changing the
	// questions or their scoring changes outcomes, so answer files can pin it.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Author  string `yaml:"author,omitempty" json:"author,omitempty"`
}

// Category is one archetype of the profile.
type Category struct {
	// Name is the unique display name, also used as the key in scoring tables.
	Name string `yaml:"name" json:"name"`
	// Description is the static text shown next to the category in results.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Points maps a category name to the points awarded to it.
type Points map[string]float64

// ScaleRange is the integer domain of a scale question.
type ScaleRange struct {
	Min      int    `yaml:"min" json:"min"`
	Max      int    `yaml:"max" json:"max"`
	MinLabel string `yaml:"min_label,omitempty" json:"min_label,omitempty"`
	MaxLabel string `yaml:"max_label,omitempty" json:"max_label,omitempty"`
}

// Contains reports whether v is inside the range.
func (r *ScaleRange) Contains(v int) bool {
	return r != nil && v >= r.Min && v <= r.Max
}

// ScaleScoring maps each scale value to the points it awards. Values that
// are absent award nothing.
type ScaleScoring map[int]Points

// Option is one selectable item of a single-choice or ranking question.
type Option struct {
	// Value is the token submitted as the answer.
	Value string `yaml:"value" json:"value"`
	// Text is the label presented to the respondent.
	Text string `yaml:"text" json:"text"`
	// Scores are the points awarded when the option is chosen. For ranking
	// questions they are the maximum points, awarded in full at rank 1.
	Scores Points `yaml:"scores,omitempty" json:"scores,omitempty"`
}

// Question is a single survey item.
type Question struct {
	// ID uniquely and stably identifies the question; answers are keyed by it.
	ID string `yaml:"id" json:"id"`
	// Kind selects the answer shape and scoring rule.
	Kind Kind `yaml:"kind" json:"kind"`
	// Text is the prompt shown to the respondent.
	Text string `yaml:"text" json:"text"`
	// Scale is the domain of a scale question.
	Scale *ScaleRange `yaml:"scale,omitempty" json:"scale,omitempty"`
	// Scoring is the per-value table of a scale question.
	Scoring ScaleScoring `yaml:"scoring,omitempty" json:"scoring,omitempty"`
	// Options are the choices of a single-choice or ranking question.
	Options []*Option `yaml:"options,omitempty" json:"options,omitempty"`

	Position Position `yaml:"-" json:"-"`
}
