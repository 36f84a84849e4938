// Package state owns the in-memory application aggregate (question bank,
// attempt history, document log) and exposes discrete mutation commands.
// Persistence is a subscriber: every successful command notifies OnChange
// with a copy of the new state, and the caller decides how to save it.
package state

import (
	"errors"
	"sync"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

// ErrQuestionNotFound is returned by DeleteQuestion for unknown IDs.
var ErrQuestionNotFound = errors.New("question not found in bank")

// Controller is the single owner of the writable app state.
type Controller struct {
	mu    sync.Mutex
	state quiz.AppState

	// OnChange, when set, is invoked after every successful mutation with
	// a snapshot copy of the state. It runs synchronously under the command
	// call so the write order matches the mutation order.
	OnChange func(quiz.AppState)
}

// New creates a controller seeded with the given persisted state.
func New(initial quiz.AppState) *Controller {
	return &Controller{state: initial}
}

// AddQuestions appends validated questions to the bank.
// Questions failing validation are skipped; the count of accepted
// questions is returned.
func (c *Controller) AddQuestions(qs []quiz.Question) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	accepted := 0
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			continue
		}
		c.state.Questions = append(c.state.Questions, q.Clone())
		accepted++
	}
	if accepted > 0 {
		c.notifyLocked()
	}
	return accepted
}

// RecordAttempts appends a completed session's attempts to the history.
func (c *Controller) RecordAttempts(attempts []quiz.Attempt) {
	if len(attempts) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Attempts = append(c.state.Attempts, attempts...)
	c.notifyLocked()
}

// DeleteQuestion removes a question from the bank by ID. Attempt history
// referencing the question is kept; aggregators tolerate dangling IDs.
func (c *Controller) DeleteQuestion(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, q := range c.state.Questions {
		if q.ID == id {
			c.state.Questions = append(c.state.Questions[:i], c.state.Questions[i+1:]...)
			c.notifyLocked()
			return nil
		}
	}
	return ErrQuestionNotFound
}

// AddDocument records an upload log entry.
func (c *Controller) AddDocument(doc quiz.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Documents = append(c.state.Documents, doc)
	c.notifyLocked()
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() quiz.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked()
}

// Questions returns a copy of the bank.
func (c *Controller) Questions() []quiz.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyQuestions(c.state.Questions)
}

// Attempts returns a copy of the attempt history in recording order.
func (c *Controller) Attempts() []quiz.Attempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]quiz.Attempt(nil), c.state.Attempts...)
}

// Documents returns a copy of the document log.
func (c *Controller) Documents() []quiz.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]quiz.Document(nil), c.state.Documents...)
}

// QuestionByID resolves a question by ID, returning false if absent.
func (c *Controller) QuestionByID(id string) (quiz.Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range c.state.Questions {
		if q.ID == id {
			return q.Clone(), true
		}
	}
	return quiz.Question{}, false
}

func (c *Controller) notifyLocked() {
	if c.OnChange != nil {
		c.OnChange(c.copyLocked())
	}
}

func (c *Controller) copyLocked() quiz.AppState {
	return quiz.AppState{
		Questions: copyQuestions(c.state.Questions),
		Attempts:  append([]quiz.Attempt(nil), c.state.Attempts...),
		Documents: append([]quiz.Document(nil), c.state.Documents...),
	}
}

func copyQuestions(qs []quiz.Question) []quiz.Question {
	out := make([]quiz.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
