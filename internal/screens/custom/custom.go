package custom

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/ratneshs230/prepdeck/internal/router"
	"github.com/ratneshs230/prepdeck/internal/screen"
	quizscreen "github.com/ratneshs230/prepdeck/internal/screens/quiz"
	sess "github.com/ratneshs230/prepdeck/internal/session"
	"github.com/ratneshs230/prepdeck/internal/ui/components"
	"github.com/ratneshs230/prepdeck/internal/ui/layout"
	"github.com/ratneshs230/prepdeck/internal/ui/theme"
)

// form fields, top to bottom.
const (
	fieldQuestions = iota
	fieldSubject
	fieldFocus
	fieldTotal
)

// CustomScreen collects the parameters for a curated session.
type CustomScreen struct {
	deps quizscreen.Deps

	count    components.TextInput
	focus    components.TextInput
	subjects []qz.Subject
	subject  int // index into subjects; 0 is "All"
	field    int
	errMsg   string
}

var _ screen.Screen = (*CustomScreen)(nil)
var _ screen.KeyHintProvider = (*CustomScreen)(nil)

// New creates the custom session form.
func New(deps quizscreen.Deps) *CustomScreen {
	subjects := append([]qz.Subject{qz.SubjectAll}, qz.AllSubjects()...)

	count := components.NewTextInput("10", true, 3)
	focus := components.NewTextInput("e.g. fundamental rights, budget terms", false, 120)
	focus.Model.Blur()

	return &CustomScreen{
		deps:     deps,
		count:    count,
		focus:    focus,
		subjects: subjects,
	}
}

func (c *CustomScreen) Init() tea.Cmd {
	return c.count.Init()
}

func (c *CustomScreen) Title() string {
	return "Custom Session"
}

func (c *CustomScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Subject"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CustomScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c.forwardToInputs(msg)
	}

	switch kmsg.String() {
	case "enter":
		return c.start()
	case "tab", "down":
		return c.moveField(1)
	case "shift+tab", "up":
		return c.moveField(-1)
	case "left":
		if c.field == fieldSubject && c.subject > 0 {
			c.subject--
		}
		return c, nil
	case "right":
		if c.field == fieldSubject && c.subject < len(c.subjects)-1 {
			c.subject++
		}
		return c, nil
	}

	return c.forwardToInputs(msg)
}

func (c *CustomScreen) moveField(dir int) (screen.Screen, tea.Cmd) {
	c.field = (c.field + dir + fieldTotal) % fieldTotal

	c.count.Model.Blur()
	c.focus.Model.Blur()
	switch c.field {
	case fieldQuestions:
		return c, c.count.Model.Focus()
	case fieldFocus:
		return c, c.focus.Model.Focus()
	}
	return c, nil
}

func (c *CustomScreen) forwardToInputs(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch c.field {
	case fieldQuestions:
		c.count, cmd = c.count.Update(msg)
	case fieldFocus:
		c.focus, cmd = c.focus.Update(msg)
	}
	return c, cmd
}

// start validates the form and launches the session.
func (c *CustomScreen) start() (screen.Screen, tea.Cmd) {
	count, err := c.count.NumericValue()
	if err != nil || count < 1 {
		count = sess.PageSize
	}

	spec := &sess.CustomSpec{
		Count:   count,
		Subject: c.subjects[c.subject],
		Focus:   strings.TrimSpace(c.focus.Value()),
	}

	deps := c.deps
	return c, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: quizscreen.New(deps, sess.ModeCustom, spec),
		}
	}
}

func (c *CustomScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render("Build a focused session"))
	b.WriteString("\n\n")

	b.WriteString(c.renderField(fieldQuestions, "How many questions", c.count.View(), width))
	b.WriteString(c.renderField(fieldSubject, "Subject", c.renderSubject(), width))
	b.WriteString(c.renderField(fieldFocus, "Focus (free text, optional)", c.focus.View(), width))

	if c.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(c.errMsg))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
		Render("With a focus set, the AI picks the best-matching questions.\nWithout one (or offline), a random matching set is drawn."))

	return b.String()
}

func (c *CustomScreen) renderField(field int, label, value string, width int) string {
	marker := "  "
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if c.field == field {
		marker = "▸ "
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}
	line := fmt.Sprintf("%s%s:  %s", marker, labelStyle.Render(label), value)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line) + "\n\n"
}

func (c *CustomScreen) renderSubject() string {
	var parts []string
	for i, s := range c.subjects {
		label := string(s)
		if i == c.subject {
			parts = append(parts, theme.Selected.Render("["+label+"]"))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	return strings.Join(parts, "  ")
}
