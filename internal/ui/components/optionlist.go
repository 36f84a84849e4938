package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ratneshs230/prepdeck/internal/ui/theme"
)

// OptionList renders a question's answer options with A/B/C/D labels.
// After checking, correctness coloring is applied only when Reveal is set;
// exam sessions keep it off so no feedback leaks mid-session.
type OptionList struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Checked      bool
	Reveal       bool
}

// NewOptionList creates an option list with nothing selected.
func NewOptionList(options []string, correctIndex int) OptionList {
	return OptionList{
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     -1,
	}
}

// Update handles option navigation. Selection keys are ignored once the
// answer is checked unless Reveal is off (exam mode allows re-selection).
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Checked && o.Reveal {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		} else if o.Selected < 0 {
			o.Selected = 0
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	case "a", "b", "c", "d":
		idx := int(kmsg.String()[0] - 'a')
		if idx < len(o.Options) {
			o.Selected = idx
		}
	case "1", "2", "3", "4":
		idx := int(kmsg.String()[0] - '1')
		if idx < len(o.Options) {
			o.Selected = idx
		}
	}

	return o, nil
}

// View renders the option list.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Checked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case o.Checked && o.Reveal && i == o.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case o.Checked && o.Reveal && i == o.Selected:
			s += theme.Incorrect.Render(line) + "\n"
		case o.Checked && !o.Reveal && i == o.Selected:
			// Exam mode: mark the choice without judging it.
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line) + "\n"
		case o.Checked:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
