// Package survey drives a respondent through a catalog, one question at a
// time, and scores the answers once they are complete.
package survey

import (
	"context"
	"errors"
	"fmt"

	"github.com/lacquerai/archetype/internal/answer"
	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/engine"
	"github.com/lacquerai/archetype/internal/report"
	"github.com/rs/zerolog/log"
)

// ErrAborted is returned when the respondent cancels the survey
var ErrAborted = errors.New("survey aborted")

// Asker collects a single answer from the respondent
type Asker interface {
	// AskScale asks for a value in q.Scale, preselecting def.
	AskScale(q *catalog.Question, def int) (int, error)
	// AskChoice asks for one option and returns its value.
	AskChoice(q *catalog.Question) (string, error)
	// AskRanking asks for a full ordering of the options, most preferred
	// first, and returns their values.
	AskRanking(q *catalog.Question) ([]string, error)
	// Confirm asks a yes/no question.
	Confirm(label string) (bool, error)
}

// ResultHandler receives each completed result. Returning an error stops
// the survey.
type ResultHandler func(r *report.Result) error

// Runner presents a catalog and owns the answer set of the current
// attempt.
type Runner struct {
	catalog *catalog.Catalog
	asker   Asker
	answers *answer.AnswerSet
	// MaxPasses bounds how often open questions are asked again before
	// giving up. Zero means 3.
	MaxPasses int
}

// NewRunner creates a runner for c
func NewRunner(c *catalog.Catalog, asker Asker) *Runner {
	return &Runner{
		catalog: c,
		asker:   asker,
		answers: answer.New(),
	}
}

// Answers returns the answers of the current attempt
func (r *Runner) Answers() answer.Reader {
	return r.answers
}

// Run collects answers, scores them and hands the result to handle. After
// each result the respondent may take the survey again, which starts over
// with an empty answer set.
func (r *Runner) Run(ctx context.Context, handle ResultHandler) error {
	for attempt := 1; ; attempt++ {
		r.answers.Reset()

		res, err := r.Once(ctx)
		if err != nil {
			return err
		}

		log.Debug().
			Str("result_id", res.ID).
			Int("attempt", attempt).
			Msg("Survey completed")

		if err := handle(res); err != nil {
			return err
		}

		again, err := r.asker.Confirm("Take the quiz again")
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

// Once runs a single attempt on the current answer set. Questions already
// answered are not asked again.
func (r *Runner) Once(ctx context.Context) (*report.Result, error) {
	passes := r.MaxPasses
	if passes <= 0 {
		passes = 3
	}

	for pass := 0; pass < passes; pass++ {
		gaps := answer.Missing(r.catalog, r.answers)
		if len(gaps) == 0 {
			break
		}

		for _, gap := range gaps {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			q, _ := r.catalog.GetQuestion(gap.QuestionID)
			if gap.Reason != answer.ReasonUnanswered {
				log.Debug().
					Str("question", q.ID).
					Str("reason", gap.Reason).
					Msg("Asking again")
			}

			a, err := r.ask(q)
			if err != nil {
				return nil, fmt.Errorf("question %s: %w", q.ID, err)
			}
			r.answers.Set(q.ID, a)
		}
	}

	if gaps := answer.Missing(r.catalog, r.answers); len(gaps) > 0 {
		return nil, &IncompleteError{Gaps: gaps}
	}

	b := engine.Explain(r.catalog, r.answers)
	return report.New(r.catalog, b, r.answers.Values()), nil
}

func (r *Runner) ask(q *catalog.Question) (answer.Answer, error) {
	switch q.Kind {
	case catalog.KindScale:
		v, err := r.asker.AskScale(q, q.Scale.Min)
		if err != nil {
			return answer.Answer{}, err
		}
		return answer.Scale(v), nil
	case catalog.KindSingleChoice:
		token, err := r.asker.AskChoice(q)
		if err != nil {
			return answer.Answer{}, err
		}
		return answer.Choice(token), nil
	case catalog.KindRanking:
		tokens, err := r.asker.AskRanking(q)
		if err != nil {
			return answer.Answer{}, err
		}
		return answer.Ranking(tokens...), nil
	default:
		return answer.Answer{}, fmt.Errorf("unsupported question kind %q", q.Kind)
	}
}

// IncompleteError lists the questions still open when scoring was
// requested
type IncompleteError struct {
	Gaps []answer.Gap
}

// Error implements the error interface
func (e *IncompleteError) Error() string {
	if len(e.Gaps) == 1 {
		return fmt.Sprintf("question %s is not answered: %s", e.Gaps[0].QuestionID, e.Gaps[0].Reason)
	}
	return fmt.Sprintf("%d questions are not answered, first is %s (%s)", len(e.Gaps), e.Gaps[0].QuestionID, e.Gaps[0].Reason)
}
