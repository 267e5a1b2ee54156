package archetype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamCatalog = `version: "1.0"
metadata:
  name: team-roles
  version: 1.0.0
categories:
  - name: Builder
  - name: Planner
questions:
  - id: hands_on
    kind: scale
    text: How much do you enjoy hands-on work?
    scale: { min: 1, max: 3 }
    scoring:
      1: { Planner: 2 }
      3: { Builder: 2 }
  - id: first_step
    kind: single-choice
    text: What do you do first?
    options:
      - { value: sketch, text: Sketch, scores: { Builder: 3 } }
      - { value: plan, text: Plan, scores: { Planner: 3 } }
  - id: priorities
    kind: ranking
    text: Order these.
    options:
      - { value: speed, text: Speed, scores: { Builder: 4 } }
      - { value: clarity, text: Clarity, scores: { Planner: 4 } }
`

func TestEvaluate(t *testing.T) {
	c, err := ParseCatalog([]byte(teamCatalog))
	require.NoError(t, err)

	answers := NewAnswers()
	answers.Set("hands_on", Scale(1))
	answers.Set("first_step", Choice("plan"))
	answers.Set("priorities", Ranking("speed", "clarity"))
	require.True(t, Complete(c, answers))

	res, err := Evaluate(c, answers)
	require.NoError(t, err)

	// Planner: 2 + 3 + 4*0.5, Builder: 4
	require.NotNil(t, res.Top)
	assert.Equal(t, "Planner", res.Top.Category)
	assert.InDelta(t, 7, res.Top.Score, 1e-9)
	assert.Equal(t, "Builder", res.Ranked[1].Category)
	assert.InDelta(t, 4, res.Ranked[1].Score, 1e-9)
	assert.InDelta(t, 8.4, res.Visualization.AxisMax, 1e-9)

	total, ok := Score(c, answers).Get("Planner")
	require.True(t, ok)
	assert.InDelta(t, 7, total, 1e-9)
}

func TestEvaluate_Incomplete(t *testing.T) {
	c, err := ParseCatalog([]byte(teamCatalog))
	require.NoError(t, err)

	answers := NewAnswers()
	answers.Set("first_step", Choice("sketch"))
	answers.Set("priorities", Ranking("speed", "speed"))

	_, err = Evaluate(c, answers)
	var incomplete *IncompleteError
	require.True(t, errors.As(err, &incomplete))
	require.Len(t, incomplete.Gaps, 2)
	assert.Equal(t, "hands_on", incomplete.Gaps[0].QuestionID)
	assert.Equal(t, "priorities", incomplete.Gaps[1].QuestionID)
	assert.EqualError(t, err, "2 question(s) without a usable answer: hands_on, priorities")
	assert.Len(t, Missing(c, answers), 2)

	res, err := Evaluate(c, answers, WithPartial())
	require.NoError(t, err)
	assert.Equal(t, "Builder", res.Top.Category)
	assert.InDelta(t, 3, res.Top.Score, 1e-9)
	assert.Len(t, res.Breakdown.Skipped(), 1)
}

func TestEvaluate_UnscoredAnswers(t *testing.T) {
	c, err := ParseCatalog([]byte(teamCatalog))
	require.NoError(t, err)

	answers := NewAnswers()
	answers.Set("hands_on", Scale(9))
	answers.Set("first_step", Choice("no_such_option"))
	answers.Set("priorities", Ranking("speed", "clarity"))
	require.True(t, Complete(c, answers))
	assert.Empty(t, Missing(c, answers))

	res, err := Evaluate(c, answers)
	require.NoError(t, err)

	// only the ranking scores: Builder 4, Planner 4*0.5
	assert.Equal(t, "Builder", res.Top.Category)
	assert.InDelta(t, 4, res.Top.Score, 1e-9)
	assert.InDelta(t, 2, res.Ranked[1].Score, 1e-9)

	skipped := res.Breakdown.Skipped()
	require.Len(t, skipped, 2)
	assert.Equal(t, "hands_on", skipped[0].QuestionID)
	assert.Equal(t, "value has no scoring entry", skipped[0].Skipped)
	assert.Equal(t, "first_step", skipped[1].QuestionID)
	assert.Equal(t, "unknown option: no_such_option", skipped[1].Skipped)
}

func TestBuiltinCatalog(t *testing.T) {
	a, err := BuiltinCatalog()
	require.NoError(t, err)
	b, err := BuiltinCatalog()
	require.NoError(t, err)

	assert.Equal(t, "designer-archetypes", a.Metadata.Name)
	assert.Len(t, a.Categories, 8)
	assert.Len(t, a.Questions, 13)

	a.Categories[0].Name = "changed"
	assert.NotEqual(t, a.Categories[0].Name, b.Categories[0].Name)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog("quiz.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file extension")

	_, err = ParseCatalog([]byte("version: \"1.0\"\ncategories: []\nquestions: []\n"))
	assert.Error(t, err)
}
