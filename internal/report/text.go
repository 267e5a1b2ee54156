package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lacquerai/archetype/internal/style"
)

const defaultBarWidth = 40

// TextRenderer writes a Result for a terminal
type TextRenderer struct {
	// Color enables ANSI styling.
	Color bool
	// BarWidth is the width of a full chart bar, defaults to 40.
	BarWidth int
	// Descriptions includes category descriptions in the ranked list.
	Descriptions bool
}

// Render writes the suggested archetype, the ranked list and the chart.
func (t TextRenderer) Render(w io.Writer, r *Result) error {
	var b strings.Builder

	if r.Catalog.Title != "" {
		b.WriteString(t.style(style.TitleStyle, r.Catalog.Title+" results"))
		b.WriteString("\n")
	}

	if r.Top != nil {
		top := fmt.Sprintf("Suggested archetype: %s (%s)", r.Top.Category, FormatScore(r.Top.Score))
		if r.Top.Description != "" {
			top += "\n\n" + r.Top.Description
		}
		if t.Color {
			b.WriteString(style.TopBoxStyle.Width(72).Render(top))
		} else {
			b.WriteString("\n" + top + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	t.writeRanked(&b, r.Ranked)
	b.WriteString("\n")
	t.writeChart(&b, r)

	_, err := io.WriteString(w, b.String())
	return err
}

func (t TextRenderer) writeRanked(b *strings.Builder, entries []Entry) {
	width := nameWidth(entries)
	for _, e := range entries {
		name := fmt.Sprintf("%2d. %-*s", e.Rank, width, e.Category)
		fmt.Fprintf(b, "%s  %s\n", t.style(style.CategoryStyle, name), t.style(style.ScoreStyle, FormatScore(e.Score)))
		if t.Descriptions && e.Description != "" {
			if t.Color {
				b.WriteString(style.DescriptionStyle.Width(76).Render(e.Description))
			} else {
				b.WriteString("    " + e.Description)
			}
			b.WriteString("\n")
		}
	}
}

// writeChart draws one bar per category in catalog order, scaled to the
// shared axis.
func (t TextRenderer) writeChart(b *strings.Builder, r *Result) {
	width := t.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	names := make([]Entry, len(r.Visualization.Points))
	for i, p := range r.Visualization.Points {
		names[i] = Entry{Category: p.Category}
	}
	nameW := nameWidth(names)

	for _, p := range r.Visualization.Points {
		filled := Bar(p.Score, r.Visualization.AxisMax, width)
		bar := t.style(style.BarStyle, strings.Repeat("█", filled)) +
			t.style(style.BarTrackStyle, strings.Repeat("░", width-filled))
		fmt.Fprintf(b, "%-*s  %s %s\n", nameW, p.Category, bar, FormatScore(p.Score))
	}
	fmt.Fprintf(b, "%-*s  %s\n", nameW, "", t.style(style.MutedStyle, "axis 0 to "+FormatScore(r.Visualization.AxisMax)))
}

func (t TextRenderer) style(s lipgloss.Style, text string) string {
	if !t.Color {
		return text
	}
	return s.Render(text)
}

// Bar returns how many of width cells a score fills on an axis.
func Bar(score, axisMax float64, width int) int {
	if axisMax <= 0 || score <= 0 || width <= 0 {
		return 0
	}
	filled := int(math.Round(score / axisMax * float64(width)))
	return min(filled, width)
}

// FormatScore formats a score with two decimals
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

func nameWidth(entries []Entry) int {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Category))
	}
	return width
}
