package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lacquerai/archetype/internal/report"
	"github.com/lacquerai/archetype/internal/style"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// printTable outputs data in a human-readable table format
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) {
		parts := make([]string, 0, len(widths))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(headers)
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	line(sep)
	for _, row := range rows {
		line(row)
	}
}

// printResult writes a scored result in the configured output format.
// The per-question breakdown is only included with --verbose.
func printResult(w io.Writer, res *report.Result) error {
	if !viper.GetBool("verbose") {
		res = res.WithoutBreakdown()
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(w, res)
	case "yaml":
		style.PrintYAML(w, res)
	default:
		renderer := report.TextRenderer{
			Color:        colorEnabled(w),
			Descriptions: !viper.GetBool("quiet"),
		}
		return renderer.Render(w, res)
	}
	return nil
}

// colorEnabled reports whether w is a terminal that should receive ANSI
// styling.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
