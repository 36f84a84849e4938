package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ratneshs230/prepdeck/internal/ingest"
	"github.com/ratneshs230/prepdeck/internal/router"
	"github.com/ratneshs230/prepdeck/internal/screen"
	"github.com/ratneshs230/prepdeck/internal/state"
	"github.com/ratneshs230/prepdeck/internal/ui/components"
	"github.com/ratneshs230/prepdeck/internal/ui/layout"
	"github.com/ratneshs230/prepdeck/internal/ui/theme"
)

// fileDoneMsg reports one file finishing. Files run strictly one at a time;
// the next starts only after this message lands.
type fileDoneMsg struct {
	Result ingest.FileResult
}

// UploadScreen ingests study material into the question bank.
type UploadScreen struct {
	ctrl     *state.Controller
	pipeline *ingest.Pipeline

	input       components.TextInput
	queue       []string
	results     []ingest.FileResult
	running     bool
	confirmStop bool
	stopping    bool
	errMsg      string
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)

// New creates an UploadScreen.
func New(ctrl *state.Controller, pipeline *ingest.Pipeline) *UploadScreen {
	return &UploadScreen{
		ctrl:     ctrl,
		pipeline: pipeline,
		input:    components.NewTextInput("Path to a .txt/.md file or a folder of them", false, 200),
	}
}

func (u *UploadScreen) Init() tea.Cmd {
	return u.input.Init()
}

func (u *UploadScreen) Title() string {
	return "Upload Material"
}

// HandlesEsc marks that the screen routes Esc itself: leaving mid-batch
// would drop the file still being processed, so it asks first.
func (u *UploadScreen) HandlesEsc() {}

func (u *UploadScreen) KeyHints() []layout.KeyHint {
	if u.confirmStop {
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop after this file"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if u.running {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Stop"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Process"},
		{Key: "Esc", Description: "Back"},
	}
}

func (u *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fileDoneMsg:
		return u.handleFileDone(msg)

	case tea.KeyMsg:
		return u.handleKey(msg)
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return u, cmd
}

func (u *UploadScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if u.confirmStop {
		switch key {
		case "y", "Y":
			// The file in flight still finishes and is recorded; only the
			// rest of the queue is dropped.
			u.confirmStop = false
			u.stopping = true
			u.queue = nil
		case "n", "N", "esc":
			u.confirmStop = false
		}
		return u, nil
	}

	switch {
	case key == "esc" && u.running:
		u.confirmStop = true
		return u, nil
	case key == "esc":
		return u, func() tea.Msg { return router.PopScreenMsg{} }
	case key == "enter" && !u.running:
		return u.startBatch()
	}

	if !u.running {
		var cmd tea.Cmd
		u.input, cmd = u.input.Update(msg)
		return u, cmd
	}
	return u, nil
}

// startBatch expands the entered path into a file queue and kicks off the
// first file.
func (u *UploadScreen) startBatch() (screen.Screen, tea.Cmd) {
	path := strings.TrimSpace(u.input.Value())
	if path == "" {
		return u, nil
	}

	files, err := expandPath(path)
	if err != nil {
		u.errMsg = err.Error()
		return u, nil
	}
	if len(files) == 0 {
		u.errMsg = "no .txt or .md files found there"
		return u, nil
	}

	u.errMsg = ""
	u.results = nil
	u.queue = files
	u.running = true
	return u, u.processNext()
}

func (u *UploadScreen) handleFileDone(msg fileDoneMsg) (screen.Screen, tea.Cmd) {
	res := msg.Result
	u.results = append(u.results, res)

	// Record the outcome whether or not extraction succeeded.
	u.ctrl.AddDocument(res.Document)
	if len(res.Questions) > 0 {
		u.ctrl.AddQuestions(res.Questions)
	}

	if len(u.queue) == 0 {
		u.running = false
		if u.stopping {
			u.stopping = false
			return u, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return u, nil
	}
	return u, u.processNext()
}

// processNext pops the queue head and runs it off the update loop.
func (u *UploadScreen) processNext() tea.Cmd {
	next := u.queue[0]
	u.queue = u.queue[1:]
	pipeline := u.pipeline
	return func() tea.Msg {
		results := pipeline.Run(context.Background(), []string{next}, nil)
		return fileDoneMsg{Result: results[0]}
	}
}

func (u *UploadScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render("Add study material"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Path: "+u.input.View()))
	b.WriteString("\n\n")

	if u.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(u.errMsg))
		b.WriteString("\n\n")
	}

	if u.confirmStop {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Accent).
			Render("Stop uploading? The current file finishes, the rest are skipped. (y/n)"))
		b.WriteString("\n\n")
	}

	if u.running {
		done := len(u.results)
		total := done + len(u.queue) + 1
		bar := components.NewProgressBar("Processing", float64(done)/float64(total), false, 40)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	for _, res := range u.results {
		var line string
		if res.Err != nil {
			line = lipgloss.NewStyle().Foreground(theme.Error).
				Render(fmt.Sprintf("✗ %-30s %s", res.Document.Name, res.Err))
		} else {
			line = lipgloss.NewStyle().Foreground(theme.Success).
				Render(fmt.Sprintf("✓ %-30s %d questions added", res.Document.Name, len(res.Questions)))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}

// expandPath turns a file or directory path into an ordered list of
// ingestable files.
func expandPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(path, entry.Name())
		if ingest.SupportedFile(full) {
			files = append(files, full)
		}
	}
	sort.Strings(files)
	return files, nil
}
