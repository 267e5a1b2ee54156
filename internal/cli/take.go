package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lacquerai/archetype/internal/report"
	"github.com/lacquerai/archetype/internal/style"
	"github.com/lacquerai/archetype/internal/survey"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var takeCmd = &cobra.Command{
	Use:   "take [catalog]",
	Short: "Take a survey interactively",
	Long: `Take a survey one question at a time and see which archetype fits you best.

Scale questions are answered by picking a value, single-choice questions by
picking an option and ranking questions by picking the options in order of
preference. Once every question is answered the ranked archetypes are printed
and you can take the survey again.`,
	Example: `
  arq take                  # Take the built-in Designer Archetype Quiz
  arq take quiz.arq.yaml    # Take a custom catalog
  arq take --output json    # Print the result as JSON`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return takeSurvey(cmd, args)
	},
}

var pageSize int

func init() {
	rootCmd.AddCommand(takeCmd)

	takeCmd.Flags().IntVar(&pageSize, "page-size", 0, "number of options shown at once (default shows all)")
}

func takeSurvey(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("take needs an interactive terminal, use arq score to score an answers file")
	}

	c, err := loadCatalog(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !viper.GetBool("quiet") {
		fmt.Fprintln(out, style.TitleStyle.Render(c.Title()))
		if c.Metadata != nil && c.Metadata.Description != "" {
			fmt.Fprintln(out, style.MutedStyle.Render(c.Metadata.Description))
		}
		fmt.Fprintln(out)
	}

	asker := survey.NewPromptAsker(nil, nil)
	asker.Size = pageSize

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := survey.NewRunner(c, asker)
	err = runner.Run(ctx, func(res *report.Result) error {
		logSkipped(res.Breakdown)
		fmt.Fprintln(out)
		return printResult(out, res)
	})
	if errors.Is(err, survey.ErrAborted) {
		style.Info(cmd.ErrOrStderr(), "Survey cancelled")
		return nil
	}
	return err
}
