package parser

import (
	"errors"
	"testing"

	"github.com/lacquerai/archetype/internal/answer"
	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadMinimal(t *testing.T) *catalog.Catalog {
	t.Helper()
	parser, err := NewYAMLParser()
	require.NoError(t, err)
	c, err := parser.ParseFile("testdata/valid/minimal.arq.yaml")
	require.NoError(t, err)
	return c
}

func TestParseAnswersFile(t *testing.T) {
	c := loadMinimal(t)

	testCases := []struct {
		name     string
		filename string
		rate     int
		pick     string
		order    []string
	}{
		{
			name:     "YAML answers",
			filename: "testdata/valid/minimal.answers.yaml",
			rate:     3,
			pick:     "y",
			order:    []string{"innovation", "teamwork"},
		},
		{
			name:     "JSON answers",
			filename: "testdata/valid/minimal.answers.json",
			rate:     5,
			pick:     "x",
			order:    []string{"teamwork", "innovation"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := ParseAnswersFile(tc.filename, c)
			require.NoError(t, err)
			assert.Equal(t, 3, set.Len())
			assert.True(t, answer.Complete(c, set))

			a, _ := set.Get("rate")
			v, ok := a.ScaleValue()
			require.True(t, ok)
			assert.Equal(t, tc.rate, v)

			a, _ = set.Get("pick")
			token, ok := a.ChoiceValue()
			require.True(t, ok)
			assert.Equal(t, tc.pick, token)

			a, _ = set.Get("order")
			tokens, ok := a.RankingValue()
			require.True(t, ok)
			assert.Equal(t, tc.order, tokens)
		})
	}
}

func TestParseAnswers(t *testing.T) {
	c := loadMinimal(t)

	testCases := []struct {
		name        string
		data        string
		expectError bool
		contains    string
		answered    int
	}{
		{
			name:     "Partial answers with null",
			data:     "answers:\n  rate: 2\n  pick: ~\n",
			answered: 1,
		},
		{
			name:     "Unknown option token decodes",
			data:     "answers:\n  pick: nope\n",
			answered: 1,
		},
		{
			name:        "Scale answer is not an integer",
			data:        "answers:\n  rate: lots\n",
			expectError: true,
			contains:    `expected an integer, got "lots"`,
		},
		{
			name:        "Ranking answer is a scalar",
			data:        "answers:\n  order: innovation\n",
			expectError: true,
			contains:    "expected a list of option tokens",
		},
		{
			name:        "Unknown question",
			data:        "answers:\n  colour: blue\n",
			expectError: true,
			contains:    "answer colour: unknown question",
		},
		{
			name:        "Catalog name mismatch",
			data:        "catalog: other\nanswers:\n  rate: 2\n",
			expectError: true,
			contains:    `answers are for catalog "other", not "minimal"`,
		},
		{
			name:        "Version constraint not satisfied",
			data:        "catalog_version: \">= 2.0.0\"\nanswers:\n  rate: 2\n",
			expectError: true,
			contains:    "does not satisfy",
		},
		{
			name:        "Invalid version constraint",
			data:        "catalog_version: \"not a version\"\nanswers:\n  rate: 2\n",
			expectError: true,
			contains:    "invalid catalog_version constraint",
		},
		{
			name:        "Empty file",
			data:        "\n",
			expectError: true,
			contains:    "empty answers file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := ParseAnswers([]byte(tc.data), c)
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.contains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.answered, set.Len())
			assert.False(t, answer.Complete(c, set))
		})
	}
}

func TestParseAnswers_DecodeErrorPosition(t *testing.T) {
	c := loadMinimal(t)

	_, err := ParseAnswers([]byte("answers:\n  rate: 3\n  pick: [x, y]\n  order: 4\n"), c)
	require.Error(t, err)

	var multi *MultiError
	require.True(t, errors.As(err, &multi))
	require.Len(t, multi.Errors, 2)

	var decodeErr *answer.DecodeError
	require.True(t, errors.As(multi.Errors[0], &decodeErr))
	assert.Equal(t, "pick", decodeErr.QuestionID)

	var parseErr *ParseError
	require.True(t, errors.As(multi.Errors[1], &parseErr))
	assert.Equal(t, 4, parseErr.Position.Line)
}
