package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/lacquerai/archetype/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time variables (set by goreleaser or build scripts)
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	BuiltBy   = "unknown"
	GoVersion = runtime.Version()
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version information for arq, including build details and the supported catalog format.`,
	Example: `
  arq version               # Show basic version info
  arq version --output json # Show version info as JSON`,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// VersionInfo represents version information
type VersionInfo struct {
	Version        string `json:"version" yaml:"version"`
	Commit         string `json:"commit" yaml:"commit"`
	Date           string `json:"date" yaml:"date"`
	BuiltBy        string `json:"built_by" yaml:"built_by"`
	GoVersion      string `json:"go_version" yaml:"go_version"`
	Platform       string `json:"platform" yaml:"platform"`
	CatalogVersion string `json:"catalog_version" yaml:"catalog_version"`
}

func newVersionInfo() VersionInfo {
	return VersionInfo{
		Version:        Version,
		Commit:         Commit,
		Date:           Date,
		BuiltBy:        BuiltBy,
		GoVersion:      GoVersion,
		Platform:       fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		CatalogVersion: catalog.SupportedVersion,
	}
}

func showVersion(cmd *cobra.Command) {
	info := newVersionInfo()

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), info)
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), info)
	default:
		printText(cmd.OutOrStdout(), info, viper.GetBool("verbose"))
	}
}

func printText(w io.Writer, info VersionInfo, verbose bool) {
	if !verbose {
		fmt.Fprintln(w, info.Version)
		return
	}

	fmt.Fprintf(w, "arq %s\n", info.Version)
	fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
	fmt.Fprintf(w, "  built:    %s by %s\n", info.Date, info.BuiltBy)
	fmt.Fprintf(w, "  go:       %s\n", info.GoVersion)
	fmt.Fprintf(w, "  platform: %s\n", info.Platform)
	fmt.Fprintf(w, "  catalog:  %s\n", info.CatalogVersion)
}
