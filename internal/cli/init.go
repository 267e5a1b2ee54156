package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/parser"
	"github.com/lacquerai/archetype/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new catalog",
	Long: `Create a new archetype catalog and an answers file to try it with.

This command creates:
- <name>.arq.yaml, the catalog
- <name>.answers.yaml, answers for every question of the catalog

Templates available:
- starter: two archetypes and one question of each kind
- designer: a copy of the built-in Designer Archetype Quiz`,
	Example: `
  arq init team-roles                      # Create from the starter template
  arq init --template designer my-quiz     # Start from the built-in quiz
  arq init --dir catalogs team-roles       # Write into another directory`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "archetypes"
		if len(args) > 0 {
			name = args[0]
		}
		return initializeCatalog(cmd, name)
	},
}

var (
	templateName string
	targetDir    string
	force        bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&templateName, "template", "t", "starter", "catalog template (starter, designer)")
	initCmd.Flags().StringVar(&targetDir, "dir", ".", "directory to create the files in")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
}

// CatalogTemplate is a catalog to start from
type CatalogTemplate struct {
	Name        string
	Description string
	Catalog     func() []byte
	Answers     string
}

var templates = map[string]CatalogTemplate{
	"starter": {
		Name:        "Starter",
		Description: "Two archetypes and one question of each kind",
		Catalog:     func() []byte { return []byte(starterCatalog) },
		Answers:     starterAnswers,
	},
	"designer": {
		Name:        "Designer",
		Description: "A copy of the built-in Designer Archetype Quiz",
		Catalog:     catalog.BuiltinSource,
		Answers:     designerAnswers,
	},
}

func initializeCatalog(cmd *cobra.Command, name string) error {
	if !isValidCatalogName(name) {
		return errors.New("catalog name must contain only letters, numbers, hyphens and underscores")
	}

	tmpl, ok := templates[templateName]
	if !ok {
		names := make([]string, 0, len(templates))
		for n := range templates {
			names = append(names, n)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown template %q, available templates: %s", templateName, strings.Join(names, ", "))
	}

	slug := strcase.KebabCase(name)
	source := tmpl.Catalog()
	if templateName != "designer" {
		source = []byte(strings.ReplaceAll(string(source), "{{NAME}}", slug))
	}

	// Templates are parsed before anything is written so a broken template
	// never lands on disk.
	p, err := parser.NewYAMLParser()
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	c, err := p.ParseBytes(source)
	if err != nil {
		return fmt.Errorf("template %s is invalid: %w", templateName, err)
	}

	catalogFile := filepath.Join(targetDir, slug+".arq.yaml")
	answersFile := filepath.Join(targetDir, slug+".answers.yaml")
	answers := strings.ReplaceAll(tmpl.Answers, "{{NAME}}", c.Metadata.Name)

	for _, f := range []string{catalogFile, answersFile} {
		if _, err := os.Stat(f); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", f)
		}
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(catalogFile, source, 0o644); err != nil {
		return fmt.Errorf("failed to create %s: %w", catalogFile, err)
	}
	if err := os.WriteFile(answersFile, []byte(answers), 0o644); err != nil {
		return fmt.Errorf("failed to create %s: %w", answersFile, err)
	}

	if viper.GetBool("quiet") {
		return nil
	}

	out := cmd.OutOrStdout()
	style.Success(out, fmt.Sprintf("Created %s from the %s template", catalogFile, tmpl.Name))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Next steps:\n")
	fmt.Fprintf(out, "  arq validate %s\n", catalogFile)
	fmt.Fprintf(out, "  arq score %s -a %s\n", catalogFile, answersFile)
	fmt.Fprintf(out, "  arq take %s\n", catalogFile)
	return nil
}

func isValidCatalogName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_') {
			return false
		}
	}

	return true
}

const starterCatalog = `version: "1.0"

metadata:
  name: {{NAME}}
  title: My Archetype Quiz
  description: Answer a few questions to find your archetype.
  version: 0.1.0

categories:
  - name: Builder
    description: Learns by making things and iterating quickly.
  - name: Planner
    description: Thinks ahead and lines up the work before it starts.

questions:
  - id: q1_hands_on
    kind: scale
    text: How much do you enjoy hands-on work?
    scale:
      min: 1
      max: 5
      min_label: Not at all
      max_label: Very much
    scoring:
      1: { Planner: 2 }
      2: { Planner: 1 }
      4: { Builder: 1 }
      5: { Builder: 2 }

  - id: q2_first_step
    kind: single-choice
    text: What do you do first on a new project?
    options:
      - value: sketch
        text: Sketch or build a rough version
        scores: { Builder: 3 }
      - value: plan
        text: Write down the goals and the plan
        scores: { Planner: 3 }

  - id: q3_priorities
    kind: ranking
    text: Order these by how much they matter to you.
    options:
      - value: speed
        text: Moving fast
        scores: { Builder: 4 }
      - value: clarity
        text: Knowing where we are going
        scores: { Planner: 4 }
`

const starterAnswers = `catalog: {{NAME}}
catalog_version: ^0.1.0
answers:
  q1_hands_on: 4
  q2_first_step: sketch
  q3_priorities: [speed, clarity]
`

const designerAnswers = `catalog: {{NAME}}
catalog_version: ^1.0.0
answers:
  q1_skill_visual: 3
  q2_skill_strategy: 3
  q3_skill_interaction: 3
  q4_skill_prototyping: 3
  q5_skill_systems: 3
  q6_skill_communication: 3
  q7_skill_insights: 3
  q8_pref_activities: [visual_details, long_term_strategy, user_interactions, prototyping, complex_systems, data_analysis]
  q9_pref_voice: 3
  q10_pref_collaboration: 3
  q11_aspire_axes: [innovation, leadership, execution, teamwork]
  q12_aspire_impact: shape_strategy
  q13_aspire_project: strategic_roadmap
`
