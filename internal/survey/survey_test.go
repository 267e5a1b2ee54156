package survey

import (
	"context"
	"errors"
	"testing"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAsker answers from fixed tables and records what was asked.
type scriptedAsker struct {
	scales   map[string][]int
	choices  map[string][]string
	rankings map[string][][]string
	confirms []bool

	asked    []string
	defaults map[string]int
	err      error
}

func pop[T any](m map[string][]T, id string) T {
	values := m[id]
	v := values[0]
	if len(values) > 1 {
		m[id] = values[1:]
	}
	return v
}

func (s *scriptedAsker) AskScale(q *catalog.Question, def int) (int, error) {
	s.asked = append(s.asked, q.ID)
	if s.defaults == nil {
		s.defaults = map[string]int{}
	}
	s.defaults[q.ID] = def
	return pop(s.scales, q.ID), s.err
}

func (s *scriptedAsker) AskChoice(q *catalog.Question) (string, error) {
	s.asked = append(s.asked, q.ID)
	return pop(s.choices, q.ID), s.err
}

func (s *scriptedAsker) AskRanking(q *catalog.Question) ([]string, error) {
	s.asked = append(s.asked, q.ID)
	return pop(s.rankings, q.ID), s.err
}

func (s *scriptedAsker) Confirm(string) (bool, error) {
	if len(s.confirms) == 0 {
		return false, nil
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Version:    "1.0",
		Categories: []*catalog.Category{{Name: "X"}, {Name: "Y"}},
		Questions: []*catalog.Question{
			{
				ID:      "rate",
				Kind:    catalog.KindScale,
				Text:    "Rate",
				Scale:   &catalog.ScaleRange{Min: 1, Max: 5, MinLabel: "Low", MaxLabel: "High"},
				Scoring: catalog.ScaleScoring{3: {"X": 3, "Y": 1}},
			},
			{
				ID:   "pick",
				Kind: catalog.KindSingleChoice,
				Text: "Pick",
				Options: []*catalog.Option{
					{Value: "x", Text: "X", Scores: catalog.Points{"X": 2}},
					{Value: "y", Text: "Y", Scores: catalog.Points{"Y": 5}},
				},
			},
			{
				ID:   "order",
				Kind: catalog.KindRanking,
				Text: "Order",
				Options: []*catalog.Option{
					{Value: "a", Text: "A", Scores: catalog.Points{"X": 2}},
					{Value: "b", Text: "B", Scores: catalog.Points{"Y": 2}},
				},
			},
		},
	}
}

func TestRunner_Once(t *testing.T) {
	asker := &scriptedAsker{
		scales:   map[string][]int{"rate": {3}},
		choices:  map[string][]string{"pick": {"y"}},
		rankings: map[string][][]string{"order": {{"b", "a"}}},
	}

	r := NewRunner(testCatalog(), asker)
	res, err := r.Once(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"rate", "pick", "order"}, asker.asked)
	assert.Equal(t, 1, asker.defaults["rate"])
	require.NotNil(t, res.Top)
	assert.Equal(t, "Y", res.Top.Category)
	assert.InDelta(t, 1+5+2, res.Top.Score, 1e-9)
	assert.Equal(t, 3, r.Answers().Len())
}

func TestRunner_Once_AsksAgainForUnusableAnswers(t *testing.T) {
	asker := &scriptedAsker{
		scales:   map[string][]int{"rate": {3}},
		choices:  map[string][]string{"pick": {"nope", "x"}},
		rankings: map[string][][]string{"order": {{"a"}, {"a", "b"}}},
	}

	res, err := NewRunner(testCatalog(), asker).Once(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"rate", "pick", "order", "pick", "order"}, asker.asked)
	assert.Equal(t, "X", res.Top.Category)
}

func TestRunner_Once_GivesUp(t *testing.T) {
	asker := &scriptedAsker{
		scales:   map[string][]int{"rate": {9}},
		choices:  map[string][]string{"pick": {"x"}},
		rankings: map[string][][]string{"order": {{"a", "b"}}},
	}

	r := NewRunner(testCatalog(), asker)
	r.MaxPasses = 2
	_, err := r.Once(context.Background())

	var incomplete *IncompleteError
	require.True(t, errors.As(err, &incomplete))
	require.Len(t, incomplete.Gaps, 1)
	assert.Equal(t, "rate", incomplete.Gaps[0].QuestionID)
	assert.Contains(t, err.Error(), "question rate is not answered")
}

func TestRunner_Once_Aborted(t *testing.T) {
	asker := &scriptedAsker{
		scales: map[string][]int{"rate": {3}},
		err:    ErrAborted,
	}

	_, err := NewRunner(testCatalog(), asker).Once(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
}

func TestRunner_Once_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(testCatalog(), &scriptedAsker{}).Once(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_TakeAgainStartsOver(t *testing.T) {
	asker := &scriptedAsker{
		scales:   map[string][]int{"rate": {3}},
		choices:  map[string][]string{"pick": {"y", "x"}},
		rankings: map[string][][]string{"order": {{"b", "a"}, {"a", "b"}}},
		confirms: []bool{true, false},
	}

	var results []*report.Result
	err := NewRunner(testCatalog(), asker).Run(context.Background(), func(r *report.Result) error {
		results = append(results, r)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Y", results[0].Top.Category)
	assert.Equal(t, "X", results[1].Top.Category)
	assert.NotEqual(t, results[0].ID, results[1].ID)
	assert.Len(t, asker.asked, 6)
}

func TestRunner_Run_HandlerError(t *testing.T) {
	asker := &scriptedAsker{
		scales:   map[string][]int{"rate": {3}},
		choices:  map[string][]string{"pick": {"y"}},
		rankings: map[string][][]string{"order": {{"b", "a"}}},
		confirms: []bool{true},
	}

	boom := errors.New("boom")
	err := NewRunner(testCatalog(), asker).Run(context.Background(), func(*report.Result) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestScaleItems(t *testing.T) {
	values, labels := ScaleItems(testCatalog().Questions[0])
	assert.Equal(t, []int{1, 2, 3, 4, 5}, values)
	assert.Equal(t, []string{"1 - Low", "2", "3", "4", "5 - High"}, labels)

	values, labels = ScaleItems(&catalog.Question{ID: "none", Kind: catalog.KindScale})
	assert.Nil(t, values)
	assert.Nil(t, labels)
}
