package cli

import (
	"fmt"
	"io"

	"github.com/lacquerai/archetype/internal/answer"
	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/engine"
	"github.com/lacquerai/archetype/internal/parser"
	"github.com/lacquerai/archetype/internal/report"
	"github.com/lacquerai/archetype/internal/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scoreCmd = &cobra.Command{
	Use:   "score [catalog]",
	Short: "Score an answers file",
	Long: `Score a file of answers against a catalog and print the ranked archetypes.

The answers file is YAML or JSON and maps question IDs to answers: an integer
for scale questions, an option value for single-choice questions and a list of
option values, most preferred first, for ranking questions.

  catalog: designer-archetypes
  catalog_version: ^1.0.0
  answers:
    q1_skill_visual: 4
    q11_aspire_axes: [innovation, leadership, execution, teamwork]
    q12_aspire_impact: shape_strategy

Every question must have a usable answer unless --partial is given.`,
	Example: `
  arq score -a answers.yaml                    # Score against the built-in catalog
  arq score quiz.arq.yaml -a answers.yaml      # Score against a catalog file
  cat answers.json | arq score -a - --output json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return scoreAnswers(cmd, args)
	},
}

var (
	answersFile string
	partial     bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVarP(&answersFile, "answers", "a", "", "answers file, - reads standard input")
	scoreCmd.Flags().BoolVar(&partial, "partial", false, "score even when some questions are unanswered")
	_ = scoreCmd.MarkFlagRequired("answers")
}

func scoreAnswers(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog(args)
	if err != nil {
		return err
	}

	answers, err := readAnswers(cmd.InOrStdin(), answersFile, c)
	if err != nil {
		return err
	}

	if gaps := answer.Missing(c, answers); len(gaps) > 0 {
		if !partial {
			printGaps(cmd.ErrOrStderr(), gaps)
			return fmt.Errorf("%d of %d question(s) have no usable answer", len(gaps), len(c.Questions))
		}
		if !viper.GetBool("quiet") {
			style.Warning(cmd.ErrOrStderr(), fmt.Sprintf("Scoring %d of %d question(s)", len(c.Questions)-len(gaps), len(c.Questions)))
		}
	}

	b := engine.Explain(c, answers)
	logSkipped(b)

	return printResult(cmd.OutOrStdout(), report.New(c, b, answers.Values()))
}

func readAnswers(stdin io.Reader, filename string, c *catalog.Catalog) (*answer.AnswerSet, error) {
	if filename != "-" {
		return parser.ParseAnswersFile(filename, c)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	return parser.ParseAnswers(data, c)
}

func printGaps(w io.Writer, gaps []answer.Gap) {
	style.Error(w, "Answers are incomplete")
	rows := make([][]string, len(gaps))
	for i, gap := range gaps {
		rows[i] = []string{gap.QuestionID, string(gap.Kind), gap.Reason}
	}
	printTable(w, []string{"Question", "Kind", "Reason"}, rows)
}

// logSkipped records answers that were given but contributed nothing
func logSkipped(b *engine.Breakdown) {
	for _, c := range b.Skipped() {
		log.Debug().
			Str("question", c.QuestionID).
			Str("kind", string(c.Kind)).
			Interface("answer", c.Answer).
			Str("reason", c.Skipped).
			Msg("Answer contributed no points")
	}
}
