package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stoewer/go-strcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func Test_Valid(t *testing.T) {
	newSingleDirectoryValidateTest(t)
}

func Test_UnknownCategory(t *testing.T) {
	newSingleDirectoryValidateTest(t)
}

func Test_DuplicateQuestionId(t *testing.T) {
	newSingleDirectoryValidateTest(t)
}

func Test_ScoringOutsideScale(t *testing.T) {
	newSingleDirectoryValidateTest(t)
}

func Test_BadKind(t *testing.T) {
	newSingleDirectoryValidateTest(t)
}

func Test_SyntaxError(t *testing.T) {
	newSingleDirectoryValidateTest(t)
}

func Test_UnreachableCategory(t *testing.T) {
	newSingleDirectoryValidateTest(t)
}

func Test_BadMetadataVersion(t *testing.T) {
	newSingleDirectoryValidateTest(t)
}

// validateExpectation is the expect.yaml of a validate fixture directory
type validateExpectation struct {
	Valid    bool     `yaml:"valid"`
	Contains []string `yaml:"contains"`
}

// newSingleDirectoryValidateTest validates testdata/validate/<name>/catalog.arq.yaml
// where name is the snake_case form of the calling test, and checks the
// output against expect.yaml in the same directory.
func newSingleDirectoryValidateTest(t *testing.T) {
	t.Helper()

	pc, _, _, _ := runtime.Caller(1)
	funcName := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(funcName, "."); idx != -1 {
		funcName = funcName[idx+1:]
	}
	directory := filepath.Join("testdata", "validate", strcase.SnakeCase(strings.TrimPrefix(funcName, "Test_")))

	data, err := os.ReadFile(filepath.Join(directory, "expect.yaml"))
	require.NoError(t, err)
	var expect validateExpectation
	require.NoError(t, yaml.Unmarshal(data, &expect))

	cmd, out := newTestCommand()
	err = validateCatalogs(cmd, []string{filepath.Join(directory, "catalog.arq.yaml")})
	if expect.Valid {
		assert.NoError(t, err)
	} else {
		assert.Error(t, err)
	}

	output := ansiRe.ReplaceAllString(out.String(), "")
	for _, s := range expect.Contains {
		assert.Contains(t, output, s)
	}
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	out := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(""))
	return cmd, out
}

func TestValidateCommand_MultipleFiles(t *testing.T) {
	output, err := executeCommand(rootCmd, "validate", "--show-all",
		"testdata/validate/valid/catalog.arq.yaml",
		"testdata/validate/unknown_category/catalog.arq.yaml",
		"testdata/catalogs/team.arq.yaml",
	)
	require.Error(t, err)
	assert.Contains(t, output, "1 of 3 catalog(s) failed validation")
	assert.Contains(t, output, "testdata/catalogs/team.arq.yaml")
}

func TestValidateCommand_JSON(t *testing.T) {
	output, err := executeCommand(rootCmd, "validate", "--output", "json", "testdata/validate/unknown_category/catalog.arq.yaml")
	require.Error(t, err)

	var summary struct {
		Total   int `json:"total"`
		Invalid int `json:"invalid"`
		Results []struct {
			File   string   `json:"file"`
			Valid  bool     `json:"valid"`
			Errors []string `json:"errors"`
		} `json:"results"`
	}
	// the returned error is printed after the JSON document
	doc := output[:strings.LastIndex(output, "}")+1]
	require.NoError(t, json.Unmarshal([]byte(doc), &summary))
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Invalid)
	require.Len(t, summary.Results, 1)
	assert.False(t, summary.Results[0].Valid)
	assert.Contains(t, summary.Results[0].Errors[0], "unknown category: Wizard")
}

func TestValidationSummary_DurationInMilliseconds(t *testing.T) {
	result := ValidationResult{File: "a.arq.yaml", Valid: true}
	result.setDuration(1500 * time.Millisecond)
	summary := ValidationSummary{Total: 1, Valid: 1, Results: []ValidationResult{result}}
	summary.setDuration(2 * time.Second)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, float64(2000), doc["total_duration_ms"])
	results := doc["results"].([]any)
	assert.Equal(t, float64(1500), results[0].(map[string]any)["duration_ms"])
	assert.NotContains(t, doc, "Duration")

	out, err := yaml.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(out), "total_duration_ms: 2000")
	assert.Contains(t, string(out), "duration_ms: 1500")
}

func TestValidateCommand_Recursive(t *testing.T) {
	_, err := executeCommand(rootCmd, "validate", "testdata/validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --recursive")

	output, err := executeCommand(rootCmd, "validate", "-r", "testdata/validate")
	require.Error(t, err)
	assert.Contains(t, output, "6 of 8 catalog(s) failed validation")
}

func TestCollectFiles(t *testing.T) {
	testCases := []struct {
		name      string
		args      []string
		recursive bool
		expected  int
		errMsg    string
	}{
		{"Single file", []string{"testdata/catalogs/team.arq.yaml"}, false, 1, ""},
		{"Directory needs recursive", []string{"testdata/catalogs"}, false, 0, "is a directory"},
		{"Directory recursive skips other files", []string{"testdata/catalogs"}, true, 1, ""},
		{"Not a catalog", []string{"testdata/catalogs/team.answers.yaml"}, false, 0, "is not a catalog file"},
		{"Missing file", []string{"testdata/nope.arq.yaml"}, false, 0, "cannot access"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			files, err := collectFiles(tc.args, tc.recursive)
			if tc.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, files, tc.expected)
		})
	}
}
