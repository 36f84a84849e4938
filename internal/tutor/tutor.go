// Package tutor wraps the LLM provider behind the tutoring surface: on-demand
// explanations and the automatic "why was that wrong" follow-up after an
// incorrect answer. All generation is asynchronous so a slow provider never
// stalls answer flow.
package tutor

import (
	"context"
	"fmt"
	"sync"

	"github.com/ratneshs230/prepdeck/internal/llm"
	"github.com/ratneshs230/prepdeck/internal/quiz"
)

// Mode selects the tutoring prompt.
type Mode string

const (
	ModeExplain  Mode = "explain"
	ModeHint     Mode = "hint"
	ModeWhyWrong Mode = "why-wrong"
)

// Explanation is one completed tutoring response.
type Explanation struct {
	QuestionID string
	Mode       Mode
	Text       string
}

// Input describes what to explain.
type Input struct {
	Question      quiz.Question
	SelectedIndex int
	Mode          Mode
}

// Config controls tutoring generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTokens: 512, Temperature: 0.5}
}

// Service generates tutoring explanations asynchronously. Only one request
// is in-flight at a time; a new request supersedes the slot, and a
// superseded result is dropped rather than surfacing for the wrong question.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu         sync.Mutex
	gen        uint64 // bumped per Request; stale completions check it
	questionID string // question of the outstanding request
	reqMode    Mode
	pending    *Explanation
	err        error
	ready      bool
}

// NewService creates a tutoring service. A nil provider is allowed: every
// request then resolves to the unavailable fallback text.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// FallbackText is shown when no explanation could be generated. Tutoring
// failures are apologetic, never fatal.
const FallbackText = "Sorry, the tutor is unavailable right now. The stored explanation above is the best guide for this one."

// Request starts async generation for the given input. Any earlier request
// still in flight (or completed but unconsumed) is superseded: its result
// will never be returned by Consume.
func (s *Service) Request(ctx context.Context, input Input) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.questionID = input.Question.ID
	s.reqMode = input.Mode
	s.pending = nil
	s.err = nil
	s.ready = false
	s.mu.Unlock()

	go func() {
		expl, err := s.generate(ctx, input)
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			// A newer request owns the slot.
			return
		}
		s.pending = expl
		s.err = err
		s.ready = true
	}()
}

// Consume returns the latest request's explanation if it is ready. Failed
// requests yield the fallback text, tagged with the request's question so
// callers can still match it against what they are showing. After
// consumption the slot is cleared.
func (s *Service) Consume() (*Explanation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	expl := s.pending
	failed := s.err != nil || expl == nil
	questionID := s.questionID
	mode := s.reqMode
	s.pending = nil
	s.err = nil
	s.ready = false
	if failed {
		return &Explanation{QuestionID: questionID, Mode: mode, Text: FallbackText}, true
	}
	return expl, true
}

func (s *Service) generate(ctx context.Context, input Input) (*Explanation, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	ctx = llm.WithPurpose(ctx, "tutor")

	req := llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTutorMessage(input)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tutoring generation: %w", err)
	}

	text := string(resp.Content)
	if text == "" {
		return nil, fmt.Errorf("empty tutoring response")
	}

	return &Explanation{
		QuestionID: input.Question.ID,
		Mode:       input.Mode,
		Text:       text,
	}, nil
}
