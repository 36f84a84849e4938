package bank

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/ratneshs230/prepdeck/internal/screen"
	"github.com/ratneshs230/prepdeck/internal/state"
	"github.com/ratneshs230/prepdeck/internal/ui/layout"
	"github.com/ratneshs230/prepdeck/internal/ui/theme"
)

// BankScreen lists the question bank with per-question delete.
type BankScreen struct {
	ctrl      *state.Controller
	questions []quiz.Question
	selected  int
	offset    int
	confirm   bool
}

var _ screen.Screen = (*BankScreen)(nil)
var _ screen.KeyHintProvider = (*BankScreen)(nil)

// New creates a BankScreen over the current bank.
func New(ctrl *state.Controller) *BankScreen {
	return &BankScreen{
		ctrl:      ctrl,
		questions: ctrl.Questions(),
	}
}

func (s *BankScreen) Init() tea.Cmd {
	return nil
}

func (s *BankScreen) Title() string {
	return "Question Bank"
}

func (s *BankScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BankScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirm {
		switch kmsg.String() {
		case "y", "Y":
			s.deleteSelected()
			s.confirm = false
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.questions)-1 {
			s.selected++
		}
	case "d":
		if len(s.questions) > 0 {
			s.confirm = true
		}
	}
	return s, nil
}

// deleteSelected removes the question from the bank. Past attempts stay in
// history; aggregators skip the dangling IDs.
func (s *BankScreen) deleteSelected() {
	if s.selected < 0 || s.selected >= len(s.questions) {
		return
	}
	id := s.questions[s.selected].ID
	if err := s.ctrl.DeleteQuestion(id); err != nil {
		return
	}
	s.questions = s.ctrl.Questions()
	if s.selected >= len(s.questions) && s.selected > 0 {
		s.selected--
	}
}

func (s *BankScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  The bank is empty. Upload study material to fill it.")
	}

	if s.confirm {
		return s.renderConfirm(width)
	}

	// Visible window: header takes 2 lines, each row takes 1.
	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d questions", len(s.questions))))
	b.WriteString("\n\n")

	end := s.offset + visible
	if end > len(s.questions) {
		end = len(s.questions)
	}

	for i := s.offset; i < end; i++ {
		q := s.questions[i]
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		text := q.Text
		maxText := width - 40
		if maxText > 0 && len(text) > maxText {
			text = text[:maxText-1] + "…"
		}

		line := fmt.Sprintf("%s%-18s %-7s %s", prefix, q.Subject, q.Difficulty, text)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *BankScreen) renderConfirm(width int) string {
	q := s.questions[s.selected]

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render("Delete this question?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Error).
		Render("[Y] Delete"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Primary).
		Render("[N] Keep it"))
	return b.String()
}
