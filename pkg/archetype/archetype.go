// Package archetype provides a public API for scoring archetype surveys
// programmatically. It allows third-party applications to load catalogs,
// collect answers in their own user interface and compute the resulting
// archetype profile without going through the arq CLI.
//
// The main functionality includes:
//   - Loading catalogs from files, bytes or the built-in Designer Archetype Quiz
//   - Building answer sets in code or loading them from answers files
//   - Checking that every question has a usable answer
//   - Scoring answers into a ranked profile with chart data
//
// Example usage:
//
//	c, err := archetype.BuiltinCatalog()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	answers := archetype.NewAnswers()
//	answers.Set("q1_skill_visual", archetype.Scale(4))
//	answers.Set("q12_aspire_impact", archetype.Choice("shape_strategy"))
//	answers.Set("q11_aspire_axes", archetype.Ranking("innovation", "leadership", "execution", "teamwork"))
//
//	res, err := archetype.Evaluate(c, answers, archetype.WithPartial())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Top.Category)
package archetype

import (
	"fmt"
	"strings"

	"github.com/lacquerai/archetype/internal/answer"
	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/engine"
	"github.com/lacquerai/archetype/internal/parser"
	"github.com/lacquerai/archetype/internal/report"
	"github.com/lacquerai/archetype/internal/result"
)

type (
	// Catalog is a parsed survey definition: its categories and questions.
	// A catalog is read-only once loaded and may be shared between
	// goroutines.
	Catalog = catalog.Catalog
	// Question is a single survey item of a catalog.
	Question = catalog.Question
	// AnswerSet holds the answers of one respondent keyed by question ID.
	// It is not safe for concurrent use.
	AnswerSet = answer.AnswerSet
	// Answer is a single scale value, option token or ranking.
	Answer = answer.Answer
	// Gap is a question without a usable answer.
	Gap = answer.Gap
	// ScoreVector holds one total per category in catalog order.
	ScoreVector = result.ScoreVector
	// Breakdown decomposes a score vector into per-question contributions.
	Breakdown = engine.Breakdown
	// Result is a scored survey: the ranked categories, the suggested
	// archetype and the chart data.
	Result = report.Result
)

// Scale creates an answer to a scale question.
func Scale(v int) Answer { return answer.Scale(v) }

// Choice creates an answer to a single-choice question from an option value.
func Choice(token string) Answer { return answer.Choice(token) }

// Ranking creates an answer to a ranking question. Tokens are option values,
// most preferred first.
func Ranking(tokens ...string) Answer { return answer.Ranking(tokens...) }

// NewAnswers creates an empty answer set.
func NewAnswers() *AnswerSet { return answer.New() }

// LoadCatalog parses and validates a catalog file. The file must have a
// .arq.yaml or .arq.yml extension.
//
// Syntax errors, schema violations and semantic errors such as unknown
// category references are returned with their position in the file.
func LoadCatalog(filename string) (*Catalog, error) {
	p, err := parser.NewYAMLParser()
	if err != nil {
		return nil, err
	}
	return p.ParseFile(filename)
}

// ParseCatalog parses and validates catalog YAML held in memory.
func ParseCatalog(data []byte) (*Catalog, error) {
	p, err := parser.NewYAMLParser()
	if err != nil {
		return nil, err
	}
	return p.ParseBytes(data)
}

// BuiltinCatalog returns a freshly parsed copy of the embedded Designer
// Archetype Quiz. Callers may modify the returned catalog.
func BuiltinCatalog() (*Catalog, error) {
	p, err := parser.NewYAMLParser()
	if err != nil {
		return nil, err
	}
	return p.ParseBuiltin()
}

// LoadAnswers reads an answers file (YAML or JSON) and decodes every answer
// against the questions of c.
func LoadAnswers(filename string, c *Catalog) (*AnswerSet, error) {
	return parser.ParseAnswersFile(filename, c)
}

// Missing returns the questions of c without a usable answer, in catalog
// order.
func Missing(c *Catalog, answers *AnswerSet) []Gap {
	return answer.Missing(c, answers)
}

// Complete reports whether every question of c has a usable answer.
func Complete(c *Catalog, answers *AnswerSet) bool {
	return answer.Complete(c, answers)
}

// Score returns the raw per-category totals for answers. Unanswered and
// unusable answers contribute nothing.
func Score(c *Catalog, answers *AnswerSet) ScoreVector {
	return engine.Score(c, answers)
}

// Option configures Evaluate.
type Option func(*evaluateOptions)

type evaluateOptions struct {
	partial bool
}

// WithPartial scores incomplete answer sets instead of returning an
// *IncompleteError.
func WithPartial() Option {
	return func(o *evaluateOptions) {
		o.partial = true
	}
}

// Evaluate scores answers against c and derives the ranked result.
//
// By default every question must have a usable answer; otherwise an
// *IncompleteError listing the open questions is returned. The answer set
// is not modified.
//
// Example:
//
//	res, err := archetype.Evaluate(c, answers)
//	var incomplete *archetype.IncompleteError
//	if errors.As(err, &incomplete) {
//		for _, gap := range incomplete.Gaps {
//			fmt.Printf("%s: %s\n", gap.QuestionID, gap.Reason)
//		}
//	}
func Evaluate(c *Catalog, answers *AnswerSet, opts ...Option) (*Result, error) {
	var o evaluateOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !o.partial {
		if gaps := answer.Missing(c, answers); len(gaps) > 0 {
			return nil, &IncompleteError{Gaps: gaps}
		}
	}

	b := engine.Explain(c, answers)
	return report.New(c, b, answers.Values()), nil
}

// IncompleteError is returned by Evaluate when questions are still open.
type IncompleteError struct {
	Gaps []Gap
}

// Error implements the error interface
func (e *IncompleteError) Error() string {
	ids := make([]string, len(e.Gaps))
	for i, gap := range e.Gaps {
		ids[i] = gap.QuestionID
	}
	return fmt.Sprintf("%d question(s) without a usable answer: %s", len(e.Gaps), strings.Join(ids, ", "))
}
