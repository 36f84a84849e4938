package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ratneshs230/prepdeck/internal/router"
	"github.com/ratneshs230/prepdeck/internal/screen"
	"github.com/ratneshs230/prepdeck/internal/session"
	"github.com/ratneshs230/prepdeck/internal/ui/layout"
	"github.com/ratneshs230/prepdeck/internal/ui/theme"
)

// SummaryScreen displays the results of a completed session.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	// Tier banner.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(tierColor(sum.Tier)).
		Bold(true).
		Render(sum.Tier))
	b.WriteString("\n\n")

	// Stats line.
	statsLine := fmt.Sprintf("Questions: %d        Attempted: %d        Correct: %d        Accuracy: %d%%",
		sum.TotalQuestions, sum.Attempted, sum.Correct, sum.AccuracyPct)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	// Timing line.
	mins := sum.TotalTimeSecs / 60
	secs := sum.TotalTimeSecs % 60
	timing := fmt.Sprintf("Time: %d:%02d        Avg per question: %.1fs", mins, secs, sum.AvgTimeSecs)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(timing))
	b.WriteString("\n\n")

	// Subject divider.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Subjects")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	// Per-subject results.
	for _, sr := range sum.Subjects {
		if sr.Total == 0 {
			continue
		}
		line := fmt.Sprintf("  %-20s %d/%d correct", sr.Subject, sr.Correct, sr.Total)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if sr.Correct == sr.Total {
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func tierColor(tier string) color.Color {
	switch tier {
	case session.TierOutstanding:
		return theme.Accent
	case session.TierStrong:
		return theme.Success
	case session.TierDeveloping:
		return theme.Secondary
	default:
		return theme.TextDim
	}
}
