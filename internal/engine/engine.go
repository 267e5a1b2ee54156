// Package engine converts survey answers into per-category scores.
//
// Scoring is pure: it never logs, never mutates its inputs and returns the
// same vector for the same catalog and answers. Answers that cannot be
// scored (unknown tokens, values missing from a scale table, malformed
// rankings, answers of the wrong kind) contribute nothing; Explain records
// why.
package engine

import (
	"fmt"

	"github.com/lacquerai/archetype/internal/answer"
	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/result"
)

// Skip reasons recorded in a Contribution
const (
	SkipUnanswered     = "unanswered"
	SkipKindMismatch   = "answer kind does not match question kind"
	SkipNoScoring      = "value has no scoring entry"
	SkipUnknownOption  = "unknown option"
	SkipInvalidRanking = "invalid ranking"
)

// Contribution is what one question added to the score vector
type Contribution struct {
	QuestionID string       `json:"question_id" yaml:"question_id"`
	Kind       catalog.Kind `json:"kind" yaml:"kind"`
	// Answer is the answer as given, nil when unanswered.
	Answer any `json:"answer,omitempty" yaml:"answer,omitempty"`
	// Points are the category points the answer added, in category order.
	Points []result.CategoryScore `json:"points,omitempty" yaml:"points,omitempty"`
	// Multipliers holds the rank multiplier applied to each option of a
	// ranking answer.
	Multipliers map[string]float64 `json:"multipliers,omitempty" yaml:"multipliers,omitempty"`
	// Skipped explains why the answer contributed nothing.
	Skipped string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Breakdown decomposes a score vector per question
type Breakdown struct {
	Questions []Contribution     `json:"questions" yaml:"questions"`
	Totals    result.ScoreVector `json:"totals" yaml:"totals"`
}

// Skipped returns the contributions of answered questions that added
// nothing.
func (b *Breakdown) Skipped() []Contribution {
	var out []Contribution
	for _, c := range b.Questions {
		if c.Skipped != "" && c.Skipped != SkipUnanswered {
			out = append(out, c)
		}
	}
	return out
}

// Score returns the score vector for answers. Every category of c is
// present, zero when nothing contributed to it.
func Score(c *catalog.Catalog, answers answer.Reader) result.ScoreVector {
	return Explain(c, answers).Totals
}

// Explain scores answers question by question, in catalog order.
func Explain(c *catalog.Catalog, answers answer.Reader) *Breakdown {
	categories := c.CategoryNames()
	acc := newAccumulator(categories)

	b := &Breakdown{Questions: make([]Contribution, 0, len(c.Questions))}
	for _, q := range c.Questions {
		contribution := Contribution{QuestionID: q.ID, Kind: q.Kind}

		a, ok := answers.Get(q.ID)
		if !ok {
			contribution.Skipped = SkipUnanswered
			b.Questions = append(b.Questions, contribution)
			continue
		}
		contribution.Answer = a.Value()

		points := acc.scratch()
		if a.Kind() != q.Kind {
			contribution.Skipped = SkipKindMismatch
		} else {
			switch q.Kind {
			case catalog.KindScale:
				contribution.Skipped = scoreScale(q, a, points)
			case catalog.KindSingleChoice:
				contribution.Skipped = scoreChoice(q, a, points)
			case catalog.KindRanking:
				contribution.Multipliers, contribution.Skipped = scoreRanking(q, a, points)
			default:
				contribution.Skipped = fmt.Sprintf("unsupported question kind %q", q.Kind)
			}
		}

		if contribution.Skipped == "" {
			contribution.Points = acc.add(points)
		}
		b.Questions = append(b.Questions, contribution)
	}

	b.Totals = acc.totals()
	return b
}

// RankMultiplier returns the share of an option's points awarded at rank
// (1-based) among n options: (n - rank + 1) / n. Rank 1 earns everything,
// the last rank earns 1/n.
func RankMultiplier(rank, n int) float64 {
	if n <= 0 || rank < 1 || rank > n {
		return 0
	}
	return float64(n-rank+1) / float64(n)
}

func scoreScale(q *catalog.Question, a answer.Answer, points map[string]float64) string {
	v, _ := a.ScaleValue()
	entry, ok := q.Scoring[v]
	if !ok {
		return SkipNoScoring
	}
	for category, p := range entry {
		points[category] += p
	}
	return ""
}

func scoreChoice(q *catalog.Question, a answer.Answer, points map[string]float64) string {
	token, _ := a.ChoiceValue()
	opt, ok := q.GetOption(token)
	if !ok {
		return fmt.Sprintf("%s: %s", SkipUnknownOption, token)
	}
	for category, p := range opt.Scores {
		points[category] += p
	}
	return ""
}

func scoreRanking(q *catalog.Question, a answer.Answer, points map[string]float64) (map[string]float64, string) {
	tokens, _ := a.RankingValue()
	if err := answer.CheckRanking(q, tokens); err != nil {
		return nil, fmt.Sprintf("%s: %v", SkipInvalidRanking, err)
	}

	n := len(q.Options)
	multipliers := make(map[string]float64, n)
	for i, token := range tokens {
		opt, _ := q.GetOption(token)
		m := RankMultiplier(i+1, n)
		multipliers[token] = m
		for category, maxPoints := range opt.Scores {
			points[category] += maxPoints * m
		}
	}
	return multipliers, ""
}
