package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ratneshs230/prepdeck/internal/dashboard"
	"github.com/ratneshs230/prepdeck/internal/router"
	"github.com/ratneshs230/prepdeck/internal/screen"
	"github.com/ratneshs230/prepdeck/internal/screens/home"
	"github.com/ratneshs230/prepdeck/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   home.Deps
	router *router.Router
	width  int
	height int
}

func newAppModel(deps home.Deps) AppModel {
	return AppModel{
		deps:   deps,
		router: router.New(home.New(deps)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens with their own Esc handling (the quiz's quit
			// confirm, forms) consume it before it reaches here.
			if _, handles := m.router.Active().(escHandler); !handles && m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)

	// Returning to the home screen after a quiz or upload must reflect the
	// new bank, so rebuild it on pop-to-root.
	if _, isPop := msg.(router.PopScreenMsg); isPop && m.router.Depth() == 1 {
		if _, isHome := m.router.Active().(*home.HomeScreen); isHome {
			m.router = router.New(home.New(m.deps))
		}
	}

	return m, cmd
}

// escHandler marks screens that give Esc a meaning of their own.
type escHandler interface {
	HandlesEsc()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	questions := m.deps.Controller.Questions()
	attempts := m.deps.Controller.Attempts()
	overview := dashboard.ComputeOverview(questions, attempts)

	header := layout.RenderHeader(title, overview.TotalQuestions, overview.AccuracyPct, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok && hp.KeyHints() != nil {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps home.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
