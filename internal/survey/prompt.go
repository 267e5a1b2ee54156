package survey

import (
	"errors"
	"fmt"
	"io"

	"github.com/lacquerai/archetype/internal/catalog"
	"github.com/manifoldco/promptui"
)

// PromptAsker asks questions on a terminal with promptui
type PromptAsker struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
	// Size is the number of options shown at once. Zero shows every option.
	Size int
}

// NewPromptAsker creates an asker reading from in and writing to out. nil
// values use the process stdin and stdout.
func NewPromptAsker(in io.ReadCloser, out io.WriteCloser) *PromptAsker {
	return &PromptAsker{stdin: in, stdout: out}
}

var selectTemplates = &promptui.SelectTemplates{
	Label:    "{{ . | bold }}",
	Active:   "▸ {{ . | cyan }}",
	Inactive: "  {{ . }}",
	Selected: "{{ \"✓\" | green }} {{ . | faint }}",
}

// AskScale presents every value of the scale with its end labels
func (p *PromptAsker) AskScale(q *catalog.Question, def int) (int, error) {
	values, labels := ScaleItems(q)

	cursor := 0
	for i, v := range values {
		if v == def {
			cursor = i
		}
	}

	i, err := p.selectIndex(q.Text, labels, cursor)
	if err != nil {
		return 0, err
	}
	return values[i], nil
}

// AskChoice presents the option texts and returns the chosen value
func (p *PromptAsker) AskChoice(q *catalog.Question) (string, error) {
	texts := make([]string, len(q.Options))
	for i, opt := range q.Options {
		texts[i] = opt.Text
	}

	i, err := p.selectIndex(q.Text, texts, 0)
	if err != nil {
		return "", err
	}
	return q.Options[i].Value, nil
}

// AskRanking picks the options one rank at a time; the last remaining
// option takes the last rank.
func (p *PromptAsker) AskRanking(q *catalog.Question) ([]string, error) {
	remaining := make([]*catalog.Option, len(q.Options))
	copy(remaining, q.Options)

	n := len(q.Options)
	ranking := make([]string, 0, n)
	for len(remaining) > 1 {
		texts := make([]string, len(remaining))
		for i, opt := range remaining {
			texts[i] = opt.Text
		}

		label := fmt.Sprintf("%s\nRank %d of %d", q.Text, len(ranking)+1, n)
		i, err := p.selectIndex(label, texts, 0)
		if err != nil {
			return nil, err
		}

		ranking = append(ranking, remaining[i].Value)
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	if len(remaining) == 1 {
		ranking = append(ranking, remaining[0].Value)
	}

	return ranking, nil
}

// Confirm asks a y/N question
func (p *PromptAsker) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin,
		Stdout:    p.stdout,
	}

	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, promptError(err)
	}
}

func (p *PromptAsker) selectIndex(label string, items []string, cursor int) (int, error) {
	size := p.Size
	if size <= 0 {
		size = len(items)
	}

	sel := promptui.Select{
		Label:     label,
		Items:     items,
		Size:      size,
		CursorPos: cursor,
		HideHelp:  true,
		Templates: selectTemplates,
		Stdin:     p.stdin,
		Stdout:    p.stdout,
	}

	i, _, err := sel.Run()
	if err != nil {
		return 0, promptError(err)
	}
	return i, nil
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrAborted
	}
	return err
}

// ScaleItems returns the values of a scale question and their display
// labels, with the end labels attached to min and max.
func ScaleItems(q *catalog.Question) ([]int, []string) {
	if q.Scale == nil || q.Scale.Max < q.Scale.Min {
		return nil, nil
	}

	count := q.Scale.Max - q.Scale.Min + 1
	values := make([]int, count)
	labels := make([]string, count)
	for i := range values {
		v := q.Scale.Min + i
		values[i] = v
		labels[i] = fmt.Sprintf("%d", v)
		switch {
		case v == q.Scale.Min && q.Scale.MinLabel != "":
			labels[i] += " - " + q.Scale.MinLabel
		case v == q.Scale.Max && q.Scale.MaxLabel != "":
			labels[i] += " - " + q.Scale.MaxLabel
		}
	}
	return values, labels
}
