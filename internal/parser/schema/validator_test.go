package schema

import (
	"testing"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateBuiltinCatalog(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	result, err := validator.ValidateBytes(catalog.BuiltinSource())
	require.NoError(t, err)
	for _, e := range result.Errors {
		t.Logf("  - %s at %s", e.Message, e.Path)
	}
	assert.True(t, result.Valid)
}

func TestValidator_ValidateBytes(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	testCases := []struct {
		name        string
		yaml        string
		expectValid bool
		expectPath  string
	}{
		{
			name: "Minimal catalog",
			yaml: `
version: "1.0"
categories:
  - name: Strategist
questions:
  - id: q1
    kind: scale
    text: Rate yourself
    scale: {min: 1, max: 5}
    scoring:
      3: {Strategist: 3}
`,
			expectValid: true,
		},
		{
			name: "Unknown question kind",
			yaml: `
version: "1.0"
categories:
  - name: Strategist
questions:
  - id: q1
    kind: slider
    text: Rate yourself
`,
			expectValid: false,
			expectPath:  "/questions/0/kind",
		},
		{
			name: "Negative points",
			yaml: `
version: "1.0"
categories:
  - name: Strategist
questions:
  - id: q1
    kind: single-choice
    text: Pick one
    options:
      - value: a
        text: A
        scores: {Strategist: -1}
`,
			expectValid: false,
			expectPath:  "/questions/0/options/0/scores/Strategist",
		},
		{
			name: "Non-integer scoring key",
			yaml: `
version: "1.0"
categories:
  - name: Strategist
questions:
  - id: q1
    kind: scale
    text: Rate yourself
    scale: {min: 1, max: 5}
    scoring:
      high: {Strategist: 3}
`,
			expectValid: false,
			expectPath:  "/questions/0/scoring",
		},
		{
			name: "Unexpected field",
			yaml: `
version: "1.0"
categories:
  - name: Strategist
questions: []
colour: blue
`,
			expectValid: false,
			expectPath:  "/",
		},
		{
			name:        "Broken YAML",
			yaml:        "version: [1.0",
			expectValid: false,
			expectPath:  "/",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := validator.ValidateBytes([]byte(tc.yaml))
			require.NoError(t, err)
			assert.Equal(t, tc.expectValid, result.Valid)

			if !tc.expectValid {
				require.NotEmpty(t, result.Errors)
				paths := make([]string, len(result.Errors))
				for i, e := range result.Errors {
					paths[i] = e.Path
				}
				assert.Contains(t, paths, tc.expectPath)
			}
		})
	}
}
