package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/parser"
	"github.com/lacquerai/archetype/internal/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate catalog files",
	Long: `Validate archetype catalog files for syntax errors, schema compliance and semantic correctness.

This command checks:
- YAML syntax validity
- JSON schema compliance
- Unique category names and question IDs
- Category references in every score table
- Scale ranges and the values they score`,
	Example: `
  arq validate quiz.arq.yaml              # Validate a single file
  arq validate *.arq.yaml                 # Validate multiple files
  arq validate --recursive ./catalogs     # Validate a directory recursively
  arq validate --output json quiz.arq.yaml # JSON output for CI/CD`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateCatalogs(cmd, args)
	},
}

var (
	recursive bool
	showAll   bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recursively validate files in directories")
	validateCmd.Flags().BoolVar(&showAll, "show-all", false, "show all validation results, including successful ones")
}

// ValidationResult represents the result of validating a catalog file
type ValidationResult struct {
	File       string        `json:"file" yaml:"file"`
	Valid      bool          `json:"valid" yaml:"valid"`
	Duration   time.Duration `json:"-" yaml:"-"`
	DurationMS int64         `json:"duration_ms" yaml:"duration_ms"`
	Errors     []string      `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings   []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func (r *ValidationResult) setDuration(d time.Duration) {
	r.Duration = d
	r.DurationMS = d.Milliseconds()
}

// ValidationSummary represents the summary of all validation results
type ValidationSummary struct {
	Total      int                `json:"total" yaml:"total"`
	Valid      int                `json:"valid" yaml:"valid"`
	Invalid    int                `json:"invalid" yaml:"invalid"`
	Duration   time.Duration      `json:"-" yaml:"-"`
	DurationMS int64              `json:"total_duration_ms" yaml:"total_duration_ms"`
	Results    []ValidationResult `json:"results" yaml:"results"`
}

func (s *ValidationSummary) setDuration(d time.Duration) {
	s.Duration = d
	s.DurationMS = d.Milliseconds()
}

func validateCatalogs(cmd *cobra.Command, args []string) error {
	start := time.Now()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	files, err := collectFiles(args, recursive)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}

	if len(files) == 0 {
		style.Warning(stderr, "No catalog files found to validate")
		return nil
	}

	p, err := parser.NewYAMLParser()
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Parsers hold no per-file state, so one is shared by all workers.
	results := make([]ValidationResult, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			results[i] = validateSingleFile(p, file)
			return nil
		})
	}
	_ = g.Wait()

	text := viper.GetString("output") == "text"
	quiet := viper.GetBool("quiet")

	summary := ValidationSummary{
		Total:   len(results),
		Results: results,
	}
	for _, result := range results {
		if result.Valid {
			summary.Valid++
		} else {
			summary.Invalid++
		}

		if !text || quiet {
			continue
		}
		switch {
		case !result.Valid:
			style.Error(stderr, fmt.Sprintf("%s (%v)", style.FormatFilePath(result.File), result.Duration))
			for _, msg := range result.Errors {
				fmt.Fprintf(stderr, "  %s\n", indent(msg))
			}
		case showAll:
			style.Success(stdout, fmt.Sprintf("%s (%v)", style.FormatFilePath(result.File), result.Duration))
		}
		for _, msg := range result.Warnings {
			style.Warning(stderr, fmt.Sprintf("%s: %s", result.File, msg))
		}
	}
	summary.setDuration(time.Since(start))

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(stdout, summary)
	case "yaml":
		style.PrintYAML(stdout, summary)
	default:
		printValidationSummary(stdout, summary)
	}

	if summary.Invalid > 0 {
		return fmt.Errorf("%d of %d catalog(s) failed validation", summary.Invalid, summary.Total)
	}
	return nil
}

func validateSingleFile(p parser.Parser, filename string) ValidationResult {
	start := time.Now()
	result := ValidationResult{
		File:  filename,
		Valid: true,
	}

	c, err := p.ParseFile(filename)
	result.setDuration(time.Since(start))

	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Warnings = catalogWarnings(c)
	}

	log.Debug().
		Str("file", filename).
		Bool("valid", result.Valid).
		Dur("duration", result.Duration).
		Msg("Validated catalog file")

	return result
}

// catalogWarnings reports categories that no question can award points to.
// Such a category always scores zero.
func catalogWarnings(c *catalog.Catalog) []string {
	reachable := make(map[string]bool, len(c.Categories))
	mark := func(points catalog.Points) {
		for name, v := range points {
			if v > 0 {
				reachable[name] = true
			}
		}
	}

	for _, q := range c.Questions {
		for _, points := range q.Scoring {
			mark(points)
		}
		for _, opt := range q.Options {
			mark(opt.Scores)
		}
	}

	var warnings []string
	for _, name := range c.CategoryNames() {
		if !reachable[name] {
			warnings = append(warnings, fmt.Sprintf("category %q is never awarded points", name))
		}
	}
	return warnings
}

func collectFiles(args []string, recursive bool) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		switch {
		case info.IsDir() && recursive:
			err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && parser.IsCatalogFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("error walking directory %s: %w", arg, err)
			}
		case info.IsDir():
			return nil, fmt.Errorf("%s is a directory, use --recursive to validate directories", arg)
		case parser.IsCatalogFile(arg):
			files = append(files, arg)
		default:
			return nil, fmt.Errorf("%s is not a catalog file (%s)", arg, strings.Join(parser.GetSupportedExtensions(), " or "))
		}
	}

	return files, nil
}

func printValidationSummary(w io.Writer, summary ValidationSummary) {
	if viper.GetBool("quiet") {
		return
	}

	fmt.Fprintln(w)
	if summary.Invalid == 0 {
		style.Success(w, fmt.Sprintf("All %d catalog(s) are valid (%v)", summary.Total, summary.Duration))
	} else {
		style.Error(w, fmt.Sprintf("%d of %d catalog(s) failed validation (%v)", summary.Invalid, summary.Total, summary.Duration))
	}

	if !viper.GetBool("verbose") {
		return
	}

	fmt.Fprintf(w, "\nDetailed results:\n")
	rows := make([][]string, len(summary.Results))
	for i, result := range summary.Results {
		status := "valid"
		if !result.Valid {
			status = "invalid"
		}
		rows[i] = []string{result.File, status, result.Duration.String()}
	}
	printTable(w, []string{"File", "Status", "Duration"}, rows)
}

func indent(msg string) string {
	return strings.ReplaceAll(msg, "\n", "\n  ")
}
