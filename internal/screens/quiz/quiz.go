package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ratneshs230/prepdeck/internal/router"
	"github.com/ratneshs230/prepdeck/internal/screen"
	"github.com/ratneshs230/prepdeck/internal/screens/summary"
	sess "github.com/ratneshs230/prepdeck/internal/session"
	"github.com/ratneshs230/prepdeck/internal/state"
	"github.com/ratneshs230/prepdeck/internal/store"
	"github.com/ratneshs230/prepdeck/internal/tutor"
	"github.com/ratneshs230/prepdeck/internal/ui/components"
	"github.com/ratneshs230/prepdeck/internal/ui/layout"
)

// Deps are the services the quiz screen needs.
type Deps struct {
	Controller *state.Controller
	Builder    *sess.Builder
	Tutor      *tutor.Service
	Snapshots  store.SessionSnapshotRepo
}

// QuizScreen runs one session from first question to summary.
type QuizScreen struct {
	deps   Deps
	mode   sess.Mode
	custom *sess.CustomSpec

	// resume, when non-nil, restores this snapshot instead of building a
	// fresh session.
	resume *store.SessionSnapshot

	runner  *sess.Runner
	options components.OptionList

	whyWrongText    string
	whyWrongPending bool

	quitConfirm bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen that builds a fresh session for the mode.
func New(deps Deps, mode sess.Mode, custom *sess.CustomSpec) *QuizScreen {
	return &QuizScreen{deps: deps, mode: mode, custom: custom}
}

// NewResume creates a quiz screen that restores a snapshot.
func NewResume(deps Deps, snap *store.SessionSnapshot) *QuizScreen {
	return &QuizScreen{deps: deps, mode: snap.Session.Mode, resume: snap}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.startSession()
}

// HandlesEsc keeps the root model from popping this screen on Esc; the quiz
// turns it into a quit confirmation instead.
func (s *QuizScreen) HandlesEsc() {}

func (s *QuizScreen) Title() string {
	switch s.mode {
	case sess.ModeAdaptive:
		return "Adaptive Review"
	case sess.ModeExam:
		return "Mock Exam"
	case sess.ModeCustom:
		return "Custom Session"
	}
	return "Practice"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.runner == nil {
		return nil
	}
	if s.mode == sess.ModeExam {
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	if s.runner.Phase() == sess.PhaseAnswerChecked {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Select"},
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Quit"},
	}
}

// startSession assembles or restores the session off the update loop.
func (s *QuizScreen) startSession() tea.Cmd {
	deps := s.deps
	mode := s.mode
	custom := s.custom
	resume := s.resume
	return func() tea.Msg {
		now := time.Now()

		if resume != nil {
			elapsed := time.Duration(resume.ElapsedSecs) * time.Second
			runner, err := sess.Restore(resume.Session, resume.Attempts, resume.CurrentIndex, elapsed, now)
			if err != nil {
				return sessionReadyMsg{Err: err}
			}
			return sessionReadyMsg{Runner: runner}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		built, err := deps.Builder.Build(ctx, deps.Controller.Questions(), deps.Controller.Attempts(), mode, custom)
		if err != nil {
			return sessionReadyMsg{Err: err}
		}
		return sessionReadyMsg{Runner: sess.NewRunner(built, now)}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return s.handleReady(msg)

	case timerTickMsg:
		return s.handleTick(time.Time(msg))

	case tutorPollMsg:
		return s.handleTutorPoll()

	case sessionEndMsg:
		return s.finish()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.runner = msg.Runner
	s.resetOptions()

	if s.runner.Session().TimeLimitSecs > 0 {
		return s, tickCmd()
	}
	return s, nil
}

func (s *QuizScreen) handleTick(now time.Time) (screen.Screen, tea.Cmd) {
	if s.runner == nil || s.runner.Complete() {
		return s, nil
	}
	if s.runner.Tick(now) {
		// Time expired: the session is already Complete.
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleTutorPoll() (screen.Screen, tea.Cmd) {
	if !s.whyWrongPending {
		return s, nil
	}
	if expl, ok := s.deps.Tutor.Consume(); ok {
		if expl.QuestionID != s.runner.CurrentQuestion().ID {
			// A leftover answer for an earlier question; keep waiting.
			return s, tutorPollCmd()
		}
		s.whyWrongPending = false
		s.whyWrongText = expl.Text
		return s, nil
	}
	return s, tutorPollCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.runner == nil {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		return s.handleEnter()
	}

	// Option selection.
	var cmd tea.Cmd
	prev := s.options.Selected
	s.options, cmd = s.options.Update(msg)
	if s.options.Selected != prev && s.options.Selected >= 0 {
		if err := s.runner.SelectOption(s.options.Selected); err != nil {
			s.options.Selected = prev
		}
	}
	return s, cmd
}

// handleEnter checks in practice modes, advances otherwise.
func (s *QuizScreen) handleEnter() (screen.Screen, tea.Cmd) {
	now := time.Now()

	if s.mode == sess.ModeExam {
		// Exam: Enter moves on, recording whatever is selected.
		if err := s.runner.Advance(now); err != nil {
			return s, nil
		}
		s.saveSnapshot()
		if s.runner.Complete() {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		s.resetOptions()
		return s, nil
	}

	switch s.runner.Phase() {
	case sess.PhaseAwaitingAnswer:
		result, err := s.runner.CheckAnswer(now)
		if err != nil {
			return s, nil
		}
		s.options.Checked = true
		s.options.Selected = result.SelectedIndex
		s.saveSnapshot()

		if result.TriggerWhyWrong {
			s.whyWrongPending = true
			s.whyWrongText = ""
			s.deps.Tutor.Request(context.Background(), tutor.Input{
				Question:      result.Question,
				SelectedIndex: result.SelectedIndex,
				Mode:          tutor.ModeWhyWrong,
			})
			return s, tutorPollCmd()
		}
		return s, nil

	case sess.PhaseAnswerChecked:
		if err := s.runner.Advance(now); err != nil {
			return s, nil
		}
		s.whyWrongText = ""
		s.whyWrongPending = false
		if s.runner.Complete() {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		s.resetOptions()
		return s, nil
	}

	return s, nil
}

// finish records attempts, clears the snapshot and swaps in the summary.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	if s.runner == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	attempts := s.runner.Attempts()
	s.deps.Controller.RecordAttempts(attempts)

	if s.deps.Snapshots != nil {
		_ = s.deps.Snapshots.Clear(context.Background())
	}

	result := sess.Summarize(s.runner.Session(), attempts)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

// saveSnapshot persists the in-progress session. Best effort: resuming is
// a convenience, not a guarantee.
func (s *QuizScreen) saveSnapshot() {
	if s.deps.Snapshots == nil || s.runner == nil || s.runner.Complete() {
		return
	}
	now := time.Now()
	_ = s.deps.Snapshots.Save(context.Background(), store.SessionSnapshot{
		Session:      s.runner.Session(),
		Attempts:     s.runner.Attempts(),
		CurrentIndex: s.runner.CurrentIndex(),
		ElapsedSecs:  int(s.runner.Elapsed(now) / time.Second),
		SavedAt:      now,
	})
}

func (s *QuizScreen) resetOptions() {
	q := s.runner.CurrentQuestion()
	s.options = components.NewOptionList(q.Options, q.CorrectIndex)
	s.options.Reveal = s.runner.RevealAnswers()
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// tutorPollCmd polls the tutoring slot at a short interval.
func tutorPollCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tutorPollMsg(t)
	})
}
