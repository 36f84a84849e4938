package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ratneshs230/prepdeck/internal/dashboard"
	"github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/ratneshs230/prepdeck/internal/screen"
	"github.com/ratneshs230/prepdeck/internal/state"
	"github.com/ratneshs230/prepdeck/internal/ui/components"
	"github.com/ratneshs230/prepdeck/internal/ui/layout"
	"github.com/ratneshs230/prepdeck/internal/ui/theme"
)

// sparkline glyphs from empty to full.
var sparks = []rune("▁▂▃▄▅▆▇█")

// DashboardScreen shows lifetime progress across all sessions.
type DashboardScreen struct {
	overview  dashboard.Overview
	streak    int
	subjects  []dashboard.SubjectScore
	trend     []dashboard.TrendPoint
	coverage  dashboard.Coverage
	weakest   quiz.Subject
	hasWeak   bool
	documents []quiz.Document
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New computes all aggregates from the current state. The dashboard is a
// pure projection; reopening it after more practice recomputes everything.
func New(ctrl *state.Controller) *DashboardScreen {
	questions := ctrl.Questions()
	attempts := ctrl.Attempts()

	weakest, hasWeak := dashboard.WeakestSubject(questions, attempts)

	return &DashboardScreen{
		overview:  dashboard.ComputeOverview(questions, attempts),
		streak:    dashboard.Streak(attempts),
		subjects:  dashboard.SubjectProficiency(questions, attempts),
		trend:     dashboard.AccuracyTrend(attempts),
		coverage:  dashboard.ComputeCoverage(questions, attempts),
		weakest:   weakest,
		hasWeak:   hasWeak,
		documents: ctrl.Documents(),
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	if d.overview.TotalAttempts == 0 && d.overview.TotalQuestions == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing here yet. Upload study material and start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Headline stats.
	head := fmt.Sprintf("Attempts: %d    Accuracy: %d%%    Streak: %d    Avg: %.1fs",
		d.overview.TotalAttempts, d.overview.AccuracyPct, d.streak, d.overview.AvgTimeSecs)
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render(head))
	b.WriteString("\n\n")

	// Subject proficiency bars.
	b.WriteString(sectionHeader("Subjects", width))
	for _, sc := range d.subjects {
		var line string
		if sc.Total == 0 {
			line = fmt.Sprintf("%-20s %s", sc.Subject,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("not attempted yet"))
		} else {
			bar := components.NewProgressBar("", float64(sc.Score)/100, true, 40)
			line = fmt.Sprintf("%-20s %s  (%d/%d)", sc.Subject, bar.View(), sc.Correct, sc.Total)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Accuracy trend sparkline.
	if len(d.trend) > 0 {
		b.WriteString(sectionHeader("Accuracy trend", width))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderSparkline(d.trend)))
		b.WriteString("\n\n")
	}

	// Coverage.
	b.WriteString(sectionHeader("Coverage", width))
	cov := fmt.Sprintf("%s %d    %s %d    %s %d",
		lipgloss.NewStyle().Foreground(theme.Success).Render("Mastered"), d.coverage.Mastered,
		lipgloss.NewStyle().Foreground(theme.Error).Render("Needs review"), d.coverage.NeedsReview,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Unseen"), d.coverage.Unseen)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, cov))
	b.WriteString("\n\n")

	// Weakest subject call-out.
	if d.hasWeak {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Accent).
			Render(fmt.Sprintf("Focus suggestion: %s", d.weakest)))
		b.WriteString("\n\n")
	}

	// Uploads.
	if len(d.documents) > 0 {
		b.WriteString(sectionHeader("Uploads", width))
		for _, doc := range d.documents {
			status := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
			detail := fmt.Sprintf("%d questions", doc.QuestionCount)
			if doc.Status == quiz.DocumentFailed {
				status = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
				detail = "failed"
			}
			line := fmt.Sprintf("%s %-30s %s  %s",
				status, doc.Name, doc.UploadedAt.Format("Jan 02"), detail)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func sectionHeader(name string, width int) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(name)) +
		"\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n\n"
}

// renderSparkline maps accuracy points onto block glyphs with the latest
// value spelled out.
func renderSparkline(points []dashboard.TrendPoint) string {
	var b strings.Builder
	for _, p := range points {
		idx := p.AccuracyPct * (len(sparks) - 1) / 100
		b.WriteRune(sparks[idx])
	}
	last := points[len(points)-1]
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(b.String()) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  latest %d%%", last.AccuracyPct))
}
