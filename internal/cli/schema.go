package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output the catalog JSON schema",
	Long: `Output the JSON schema that catalog files are validated against.

Point your editor's YAML language server at it to get completion and
inline errors while writing *.arq.yaml files.`,
	Example: `
  arq schema > catalog.schema.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := catalog.NewSchema()
		if err != nil {
			return fmt.Errorf("failed to generate schema: %w", err)
		}

		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return fmt.Errorf("failed to format schema: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
