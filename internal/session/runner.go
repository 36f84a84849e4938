package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

// Phase is the runner's per-question state.
type Phase int

const (
	// PhaseAwaitingAnswer means the current question has not been checked.
	PhaseAwaitingAnswer Phase = iota
	// PhaseAnswerChecked means the current question's attempt is recorded.
	PhaseAnswerChecked
	// PhaseComplete is terminal; the attempt list is final.
	PhaseComplete
)

var (
	// ErrNoSelection is returned by CheckAnswer when nothing is selected.
	ErrNoSelection = errors.New("no option selected")

	// ErrAlreadyChecked is returned when re-checking outside exam mode.
	ErrAlreadyChecked = errors.New("answer already checked")

	// ErrNotChecked is returned by Advance before CheckAnswer in practice modes.
	ErrNotChecked = errors.New("check the answer before advancing")

	// ErrSessionComplete is returned by any operation after completion.
	ErrSessionComplete = errors.New("session is complete")
)

// AnswerResult reports the outcome of a checked answer. TriggerWhyWrong is
// a hint for the presentation layer to fire a detached tutoring request; it
// never feeds back into the runner.
type AnswerResult struct {
	Question      quiz.Question
	SelectedIndex int
	Correct       bool
	TriggerWhyWrong bool
}

// Runner steps a user through a session's questions, records attempts and
// enforces the countdown. Exactly one runner is active at a time; the
// screen layer owns the tick source and must stop it once Complete.
type Runner struct {
	sess *Session

	index          int
	attempts       []quiz.Attempt
	selected       int // -1 when nothing selected
	checked        bool
	questionStart  time.Time
	countdownStart time.Time
	phase          Phase
}

// NewRunner creates a runner positioned at the first question. The countdown
// is anchored to now, not to Session.StartedAt: the runner is clocked
// entirely by the times its caller injects.
// The builder guarantees at least one question.
func NewRunner(sess *Session, now time.Time) *Runner {
	return &Runner{
		sess:           sess,
		selected:       -1,
		questionStart:  now,
		countdownStart: now,
		phase:          PhaseAwaitingAnswer,
	}
}

// Restore rebuilds a runner from a persisted snapshot: the attempts checked
// so far, the question index the user was on, and the countdown time already
// spent before the snapshot. The current question's sub-state (selection,
// timer) starts fresh.
func Restore(sess *Session, attempts []quiz.Attempt, currentIndex int, elapsed time.Duration, now time.Time) (*Runner, error) {
	if currentIndex < 0 || currentIndex >= len(sess.Questions) {
		return nil, fmt.Errorf("snapshot index %d out of range for %d questions", currentIndex, len(sess.Questions))
	}
	if elapsed < 0 {
		elapsed = 0
	}
	r := NewRunner(sess, now)
	r.countdownStart = now.Add(-elapsed)
	r.index = currentIndex
	r.attempts = append([]quiz.Attempt(nil), attempts...)
	return r, nil
}

// Session returns the session being run.
func (r *Runner) Session() *Session { return r.sess }

// Phase returns the current runner phase.
func (r *Runner) Phase() Phase { return r.phase }

// Complete reports whether the session reached its terminal state.
func (r *Runner) Complete() bool { return r.phase == PhaseComplete }

// CurrentIndex returns the zero-based position of the current question.
func (r *Runner) CurrentIndex() int { return r.index }

// CurrentQuestion returns the question at the current position.
func (r *Runner) CurrentQuestion() quiz.Question {
	return r.sess.Questions[r.index]
}

// SelectedIndex returns the selected option, or -1 if none.
func (r *Runner) SelectedIndex() int { return r.selected }

// Checked reports whether the current question's answer has been recorded.
func (r *Runner) Checked() bool { return r.checked }

// Attempts returns the attempts recorded so far, in first-check order.
func (r *Runner) Attempts() []quiz.Attempt {
	return append([]quiz.Attempt(nil), r.attempts...)
}

// RevealAnswers reports whether correctness may be shown to the user.
// Exam mode never reveals correctness mid-session.
func (r *Runner) RevealAnswers() bool {
	return r.sess.Mode != ModeExam
}

// SelectOption records the user's selection for the current question.
// After checking, changing the selection is rejected in practice modes;
// exam mode allows it because checking there is only bookkeeping, not an
// answer reveal. The index must address an existing option.
func (r *Runner) SelectOption(i int) error {
	if r.phase == PhaseComplete {
		return ErrSessionComplete
	}
	if i < 0 || i >= len(r.CurrentQuestion().Options) {
		return fmt.Errorf("option %d out of range", i)
	}
	if r.checked && r.sess.Mode != ModeExam {
		return ErrAlreadyChecked
	}
	r.selected = i
	if r.checked && r.sess.Mode == ModeExam {
		// Re-selection in exam mode supersedes the recorded attempt.
		r.recordAttempt(time.Now())
	}
	return nil
}

// CheckAnswer records an attempt for the current question and transitions
// to PhaseAnswerChecked. Re-answering the same question within one session
// replaces its attempt rather than duplicating it.
func (r *Runner) CheckAnswer(now time.Time) (AnswerResult, error) {
	if r.phase == PhaseComplete {
		return AnswerResult{}, ErrSessionComplete
	}
	if r.selected < 0 {
		return AnswerResult{}, ErrNoSelection
	}
	if r.checked && r.sess.Mode != ModeExam {
		return AnswerResult{}, ErrAlreadyChecked
	}

	attempt := r.recordAttempt(now)
	r.checked = true
	r.phase = PhaseAnswerChecked

	q := r.CurrentQuestion()
	return AnswerResult{
		Question:        q,
		SelectedIndex:   r.selected,
		Correct:         attempt.Correct,
		TriggerWhyWrong: !attempt.Correct && r.sess.Mode != ModeExam,
	}, nil
}

// Advance moves to the next question, or completes the session on the last
// one. Practice modes require the current answer to be checked first; exam
// mode treats advance as an implicit check-and-advance, recording whatever
// selection exists.
func (r *Runner) Advance(now time.Time) error {
	if r.phase == PhaseComplete {
		return ErrSessionComplete
	}
	if !r.checked {
		if r.sess.Mode != ModeExam {
			return ErrNotChecked
		}
		if r.selected >= 0 {
			r.recordAttempt(now)
		}
	}

	if r.index == len(r.sess.Questions)-1 {
		r.phase = PhaseComplete
		return nil
	}

	r.index++
	r.selected = -1
	r.checked = false
	r.questionStart = now
	r.phase = PhaseAwaitingAnswer
	return nil
}

// Tick drives the countdown. It returns true when the time limit has been
// reached, in which case the session is forced to Complete with whatever
// attempts exist — regardless of the current phase. Sessions without a
// time limit never expire.
func (r *Runner) Tick(now time.Time) bool {
	if r.phase == PhaseComplete || r.sess.TimeLimitSecs == 0 {
		return false
	}
	if r.elapsedSecs(now) >= r.sess.TimeLimitSecs {
		r.phase = PhaseComplete
		return true
	}
	return false
}

// RemainingSecs returns the countdown remainder, clamped at zero.
// Zero is also returned for untimed sessions.
func (r *Runner) RemainingSecs(now time.Time) int {
	if r.sess.TimeLimitSecs == 0 {
		return 0
	}
	rem := r.sess.TimeLimitSecs - r.elapsedSecs(now)
	if rem < 0 {
		return 0
	}
	return rem
}

// Elapsed returns the countdown time spent so far. Snapshots persist this so
// a resumed session does not reset the clock.
func (r *Runner) Elapsed(now time.Time) time.Duration {
	d := now.Sub(r.countdownStart)
	if d < 0 {
		return 0
	}
	return d
}

// elapsedSecs is Elapsed in whole seconds; Tick and RemainingSecs share it
// so expiry and display never disagree.
func (r *Runner) elapsedSecs(now time.Time) int {
	return int(r.Elapsed(now) / time.Second)
}

// recordAttempt appends or replaces the attempt for the current question.
func (r *Runner) recordAttempt(now time.Time) quiz.Attempt {
	q := r.CurrentQuestion()
	elapsed := int(now.Sub(r.questionStart).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}

	attempt := quiz.Attempt{
		QuestionID:    q.ID,
		SelectedIndex: r.selected,
		Correct:       r.selected == q.CorrectIndex,
		TimeTakenSecs: elapsed,
		CreatedAt:     now,
	}

	for i, a := range r.attempts {
		if a.QuestionID == q.ID {
			r.attempts[i] = attempt
			return attempt
		}
	}
	r.attempts = append(r.attempts, attempt)
	return attempt
}
