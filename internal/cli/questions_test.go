package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionsCommand(t *testing.T) {
	output, err := executeCommand(rootCmd, "questions", "testdata/catalogs/team.arq.yaml")
	require.NoError(t, err)

	assert.Contains(t, output, "Team Roles")
	assert.Contains(t, output, "Archetypes: Builder, Planner")
	assert.Contains(t, output, "q1_hands_on    scale          1..5")
	assert.Contains(t, output, "q2_first_step  single-choice  one of 2 options")
	assert.Contains(t, output, "q3_priorities  ranking        order of 2 options")
	assert.NotContains(t, output, "Knowing where we are going")
}

func TestQuestionsCommand_Verbose(t *testing.T) {
	output, err := executeCommand(rootCmd, "questions", "testdata/catalogs/team.arq.yaml", "-v")
	require.NoError(t, err)

	assert.Contains(t, output, "How much do you enjoy hands-on work?")
	assert.Contains(t, output, "1 = Not at all, 5 = Very much")
	assert.Contains(t, output, "- clarity")
	assert.Contains(t, output, "Knowing where we are going")
}

func TestQuestionsCommand_BuiltinJSON(t *testing.T) {
	output, err := executeCommand(rootCmd, "questions", "--output", "json")
	require.NoError(t, err)

	var listing QuestionListing
	require.NoError(t, json.Unmarshal([]byte(output), &listing))
	assert.Equal(t, "Designer Archetype Quiz", listing.Catalog)
	assert.Len(t, listing.Categories, 8)
	require.Len(t, listing.Questions, 13)
	assert.Equal(t, "q1_skill_visual", listing.Questions[0].ID)
	assert.Len(t, listing.Questions[10].Options, 4)
}
