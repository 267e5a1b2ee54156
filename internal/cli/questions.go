package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var questionsCmd = &cobra.Command{
	Use:   "questions [catalog]",
	Short: "List the questions of a catalog",
	Long: `List the questions of a catalog together with the answers they accept.

Use it as a reference when writing an answers file for arq score.`,
	Example: `
  arq questions                    # Questions of the built-in catalog
  arq questions quiz.arq.yaml -v   # Include option texts
  arq questions --output yaml`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(args)
		if err != nil {
			return err
		}

		listing := newQuestionListing(c)
		switch viper.GetString("output") {
		case "json":
			style.PrintJSON(cmd.OutOrStdout(), listing)
		case "yaml":
			style.PrintYAML(cmd.OutOrStdout(), listing)
		default:
			printQuestionListing(cmd.OutOrStdout(), listing, viper.GetBool("verbose"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
}

// QuestionListing describes a catalog for answer authors
type QuestionListing struct {
	Catalog    string         `json:"catalog" yaml:"catalog"`
	Categories []string       `json:"categories" yaml:"categories"`
	Questions  []QuestionInfo `json:"questions" yaml:"questions"`
}

// QuestionInfo is one question and the answers it accepts
type QuestionInfo struct {
	ID      string              `json:"id" yaml:"id"`
	Kind    catalog.Kind        `json:"kind" yaml:"kind"`
	Text    string              `json:"text" yaml:"text"`
	Scale   *catalog.ScaleRange `json:"scale,omitempty" yaml:"scale,omitempty"`
	Options []OptionInfo        `json:"options,omitempty" yaml:"options,omitempty"`
}

// OptionInfo is an accepted option token and its label
type OptionInfo struct {
	Value string `json:"value" yaml:"value"`
	Text  string `json:"text" yaml:"text"`
}

func newQuestionListing(c *catalog.Catalog) QuestionListing {
	listing := QuestionListing{
		Catalog:    c.Title(),
		Categories: c.CategoryNames(),
		Questions:  make([]QuestionInfo, len(c.Questions)),
	}

	for i, q := range c.Questions {
		info := QuestionInfo{
			ID:    q.ID,
			Kind:  q.Kind,
			Text:  q.Text,
			Scale: q.Scale,
		}
		for _, opt := range q.Options {
			info.Options = append(info.Options, OptionInfo{Value: opt.Value, Text: opt.Text})
		}
		listing.Questions[i] = info
	}

	return listing
}

// accepts summarizes the answer a question takes
func (q QuestionInfo) accepts() string {
	switch q.Kind {
	case catalog.KindScale:
		if q.Scale == nil {
			return ""
		}
		return fmt.Sprintf("%d..%d", q.Scale.Min, q.Scale.Max)
	case catalog.KindRanking:
		return fmt.Sprintf("order of %d options", len(q.Options))
	default:
		return fmt.Sprintf("one of %d options", len(q.Options))
	}
}

func printQuestionListing(w io.Writer, listing QuestionListing, verbose bool) {
	fmt.Fprintln(w, style.TitleStyle.Render(listing.Catalog))
	fmt.Fprintf(w, "Archetypes: %s\n\n", strings.Join(listing.Categories, ", "))

	rows := make([][]string, len(listing.Questions))
	for i, q := range listing.Questions {
		rows[i] = []string{q.ID, string(q.Kind), q.accepts()}
	}
	printTable(w, []string{"ID", "Kind", "Answer"}, rows)

	if !verbose {
		return
	}

	for _, q := range listing.Questions {
		fmt.Fprintf(w, "\n%s\n  %s\n", q.ID, q.Text)
		if q.Scale != nil && (q.Scale.MinLabel != "" || q.Scale.MaxLabel != "") {
			fmt.Fprintf(w, "  %d = %s, %d = %s\n", q.Scale.Min, q.Scale.MinLabel, q.Scale.Max, q.Scale.MaxLabel)
		}
		for _, opt := range q.Options {
			fmt.Fprintf(w, "  - %-24s %s\n", opt.Value, opt.Text)
		}
	}
}
