// Package report assembles and renders the outcome of a completed survey.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/engine"
	"github.com/lacquerai/archetype/internal/result"
)

// Entry is one line of the ranked list
type Entry struct {
	Rank        int     `json:"rank" yaml:"rank"`
	Category    string  `json:"category" yaml:"category"`
	Score       float64 `json:"score" yaml:"score"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// CatalogRef identifies the catalog a result was scored against
type CatalogRef struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Result is a scored survey
type Result struct {
	ID            string               `json:"id" yaml:"id"`
	CreatedAt     time.Time            `json:"created_at" yaml:"created_at"`
	Catalog       CatalogRef           `json:"catalog" yaml:"catalog"`
	Top           *Entry               `json:"top,omitempty" yaml:"top,omitempty"`
	Ranked        []Entry              `json:"ranked" yaml:"ranked"`
	Scores        result.ScoreVector   `json:"scores" yaml:"scores"`
	Visualization result.Visualization `json:"visualization" yaml:"visualization"`
	Answers       map[string]any       `json:"answers,omitempty" yaml:"answers,omitempty"`
	Breakdown     *engine.Breakdown    `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

// New derives the ranked list and chart data from a breakdown. answers is
// attached verbatim and may be nil.
func New(c *catalog.Catalog, b *engine.Breakdown, answers map[string]any) *Result {
	ranked, viz := result.Derive(b.Totals)

	r := &Result{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Catalog:       refOf(c),
		Ranked:        make([]Entry, len(ranked)),
		Scores:        b.Totals.Clone(),
		Visualization: viz,
		Answers:       answers,
		Breakdown:     b,
	}

	for i, cs := range ranked {
		r.Ranked[i] = Entry{
			Rank:     i + 1,
			Category: cs.Category,
			Score:    cs.Score,
		}
		if category, ok := c.GetCategory(cs.Category); ok {
			r.Ranked[i].Description = category.Description
		}
	}

	if len(r.Ranked) > 0 {
		top := r.Ranked[0]
		r.Top = &top
	}

	return r
}

// WithoutBreakdown returns a shallow copy with the per-question breakdown
// removed.
func (r *Result) WithoutBreakdown() *Result {
	out := *r
	out.Breakdown = nil
	return &out
}

func refOf(c *catalog.Catalog) CatalogRef {
	ref := CatalogRef{
		Title: c.Title(),
		File:  c.SourceFile,
	}
	if c.Metadata != nil {
		ref.Name = c.Metadata.Name
		ref.Version = c.Metadata.Version
	}
	return ref
}
