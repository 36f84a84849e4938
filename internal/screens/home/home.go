package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ratneshs230/prepdeck/internal/dashboard"
	"github.com/ratneshs230/prepdeck/internal/ingest"
	"github.com/ratneshs230/prepdeck/internal/router"
	"github.com/ratneshs230/prepdeck/internal/screen"
	bankscreen "github.com/ratneshs230/prepdeck/internal/screens/bank"
	"github.com/ratneshs230/prepdeck/internal/screens/custom"
	dashscreen "github.com/ratneshs230/prepdeck/internal/screens/dashboard"
	quizscreen "github.com/ratneshs230/prepdeck/internal/screens/quiz"
	"github.com/ratneshs230/prepdeck/internal/screens/upload"
	sess "github.com/ratneshs230/prepdeck/internal/session"
	"github.com/ratneshs230/prepdeck/internal/state"
	"github.com/ratneshs230/prepdeck/internal/store"
	"github.com/ratneshs230/prepdeck/internal/tutor"
	"github.com/ratneshs230/prepdeck/internal/ui/components"
	"github.com/ratneshs230/prepdeck/internal/ui/theme"
)

// Deps bundles everything the home screen hands down to the others.
type Deps struct {
	Controller *state.Controller
	Builder    *sess.Builder
	Tutor      *tutor.Service
	Pipeline   *ingest.Pipeline
	Snapshots  store.SessionSnapshotRepo

	// AIEnabled is false when no LLM credential could be resolved. Upload
	// and tutoring are then unavailable; quizzing existing questions works.
	AIEnabled bool
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps Deps
	menu components.Menu

	bankSize  int
	resumable bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. The menu reflects the current bank: practice
// entries are disabled until at least one question exists.
func New(deps Deps) *HomeScreen {
	bankSize := len(deps.Controller.Questions())
	bankEmpty := bankSize == 0

	quizDeps := quizscreen.Deps{
		Controller: deps.Controller,
		Builder:    deps.Builder,
		Tutor:      deps.Tutor,
		Snapshots:  deps.Snapshots,
	}

	var snap *store.SessionSnapshot
	if deps.Snapshots != nil {
		snap, _ = deps.Snapshots.Load(context.Background())
	}

	items := []components.MenuItem{}

	if snap != nil {
		resumed := snap
		items = append(items, components.MenuItem{
			Label: "RESUME SESSION",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quizscreen.NewResume(quizDeps, resumed)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label:    "PRACTICE",
			Disabled: bankEmpty,
			Action:   startQuiz(quizDeps, sess.ModeStandard),
		},
		components.MenuItem{
			Label:    "ADAPTIVE REVIEW",
			Disabled: bankEmpty,
			Action:   startQuiz(quizDeps, sess.ModeAdaptive),
		},
		components.MenuItem{
			Label:    "MOCK EXAM",
			Disabled: bankEmpty,
			Action:   startQuiz(quizDeps, sess.ModeExam),
		},
		components.MenuItem{
			Label:    "CUSTOM SESSION",
			Disabled: bankEmpty,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: custom.New(quizDeps)}
				}
			},
		},
		components.MenuItem{
			Label:    "UPLOAD MATERIAL",
			Disabled: !deps.AIEnabled,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: upload.New(deps.Controller, deps.Pipeline)}
				}
			},
		},
		components.MenuItem{
			Label: "DASHBOARD",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: dashscreen.New(deps.Controller)}
				}
			},
		},
		components.MenuItem{
			Label:    "QUESTION BANK",
			Disabled: bankEmpty,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: bankscreen.New(deps.Controller)}
				}
			},
		},
		components.MenuItem{
			Label: "QUIT",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	)

	return &HomeScreen{
		deps:      deps,
		menu:      components.NewMenu(items),
		bankSize:  bankSize,
		resumable: snap != nil,
	}
}

func startQuiz(deps quizscreen.Deps, mode sess.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: quizscreen.New(deps, mode, nil)}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	// Title block.
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("P R E P D E C K")
	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Your exam prep, one deck at a time")
	sections = append(sections, title+"\n"+subtitle)

	// Status line.
	var status string
	switch {
	case h.bankSize == 0 && h.deps.AIEnabled:
		status = "The bank is empty — start with Upload Material."
	case h.bankSize == 0:
		status = "No questions and no AI key configured. Run `prepdeck key set` first."
	default:
		attempts := len(h.deps.Controller.Attempts())
		acc := dashboard.ComputeOverview(h.deps.Controller.Questions(), h.deps.Controller.Attempts()).AccuracyPct
		status = fmt.Sprintf("%d questions   ·   %d attempts   ·   %d%% lifetime accuracy", h.bankSize, attempts, acc)
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Render(status))

	// Menu.
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
