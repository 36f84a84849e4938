package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ratneshs230/prepdeck/internal/llm"
	"github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/ratneshs230/prepdeck/internal/session"
)

func tutorQuestion() quiz.Question {
	return quiz.Question{
		ID:           "q1",
		Text:         "Which body certifies a money bill?",
		Options:      []string{"The Speaker", "The President", "The Rajya Sabha", "The Supreme Court"},
		CorrectIndex: 0,
		Explanation:  "The Speaker of the Lok Sabha certifies money bills.",
		Subject:      quiz.SubjectPolity,
		Difficulty:   quiz.DifficultyMedium,
	}
}

// waitConsume polls Consume until the async slot fills.
func waitConsume(t *testing.T, s *Service) *Explanation {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if expl, ok := s.Consume(); ok {
			return expl
		}
		select {
		case <-deadline:
			t.Fatal("no explanation became ready")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRequestConsume(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: `The Speaker alone certifies a money bill under Article 110.`})

	s := NewService(mock, DefaultConfig())
	s.Request(context.Background(), Input{Question: tutorQuestion(), Mode: ModeWhyWrong, SelectedIndex: 2})

	expl := waitConsume(t, s)
	if expl.QuestionID != "q1" {
		t.Errorf("QuestionID = %q", expl.QuestionID)
	}
	if expl.Mode != ModeWhyWrong {
		t.Errorf("Mode = %q", expl.Mode)
	}
	if !strings.Contains(expl.Text, "Speaker") {
		t.Errorf("Text = %q", expl.Text)
	}
}

func TestConsumeEmptySlot(t *testing.T) {
	s := NewService(llm.NewMockProvider(), DefaultConfig())
	if _, ok := s.Consume(); ok {
		t.Error("Consume() ok = true with nothing requested")
	}
}

func TestConsumeClearsSlot(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: `answer`})

	s := NewService(mock, DefaultConfig())
	s.Request(context.Background(), Input{Question: tutorQuestion(), Mode: ModeExplain})
	waitConsume(t, s)

	if _, ok := s.Consume(); ok {
		t.Error("slot should be empty after consumption")
	}
}

// waitReady polls the slot without consuming it.
func waitReady(t *testing.T, s *Service) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		s.mu.Lock()
		ready := s.ready
		s.mu.Unlock()
		if ready {
			return
		}
		select {
		case <-deadline:
			t.Fatal("slot never became ready")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewRequestSupersedesUnconsumed(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: `first answer`})
	mock.AddResponse(llm.MockResponse{Content: `second answer`})

	s := NewService(mock, DefaultConfig())
	first := tutorQuestion()
	s.Request(context.Background(), Input{Question: first, Mode: ModeWhyWrong, SelectedIndex: 2})
	waitReady(t, s)

	// The first answer is ready but never consumed; asking about the next
	// question must not surface it.
	second := tutorQuestion()
	second.ID = "q2"
	s.Request(context.Background(), Input{Question: second, Mode: ModeWhyWrong, SelectedIndex: 1})

	expl := waitConsume(t, s)
	if expl.QuestionID != "q2" {
		t.Errorf("QuestionID = %q, want q2 (stale answer surfaced)", expl.QuestionID)
	}
	if expl.Text != "second answer" {
		t.Errorf("Text = %q, want the second answer", expl.Text)
	}
}

func TestFailureFallbackCarriesQuestionID(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	s := NewService(mock, DefaultConfig())
	s.Request(context.Background(), Input{Question: tutorQuestion(), Mode: ModeWhyWrong, SelectedIndex: 2})

	expl := waitConsume(t, s)
	if expl.QuestionID != "q1" || expl.Mode != ModeWhyWrong {
		t.Errorf("fallback not tagged with the request: %+v", expl)
	}
}

func TestFailureYieldsFallback(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	s := NewService(mock, DefaultConfig())
	s.Request(context.Background(), Input{Question: tutorQuestion(), Mode: ModeExplain})

	expl := waitConsume(t, s)
	if expl.Text != FallbackText {
		t.Errorf("Text = %q, want fallback", expl.Text)
	}
}

func TestNilProviderYieldsFallback(t *testing.T) {
	s := NewService(nil, DefaultConfig())
	s.Request(context.Background(), Input{Question: tutorQuestion(), Mode: ModeHint})

	expl := waitConsume(t, s)
	if expl.Text != FallbackText {
		t.Errorf("Text = %q, want fallback", expl.Text)
	}
}

func TestBuildTutorMessageModes(t *testing.T) {
	q := tutorQuestion()

	why := buildTutorMessage(Input{Question: q, Mode: ModeWhyWrong, SelectedIndex: 2})
	if !strings.Contains(why, "The learner chose C. The Rajya Sabha") {
		t.Errorf("why-wrong prompt missing chosen option:\n%s", why)
	}

	hint := buildTutorMessage(Input{Question: q, Mode: ModeHint})
	if !strings.Contains(hint, "without revealing it") {
		t.Errorf("hint prompt wrong:\n%s", hint)
	}
}

func TestCuratorParsesIDs(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: `{"question_ids": ["q2", "q1"]}`})

	c := NewCurator(mock, DefaultConfig())
	ids, err := c.Curate(context.Background(), []quiz.Question{tutorQuestion()}, session.CustomSpec{
		Count: 2,
		Focus: "money bills",
	})
	if err != nil {
		t.Fatalf("Curate() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "q2" || ids[1] != "q1" {
		t.Errorf("ids = %v", ids)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d", len(mock.Calls))
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "id=q1") || !strings.Contains(prompt, "money bills") {
		t.Errorf("curation prompt missing candidates or focus:\n%s", prompt)
	}
}

func TestCuratorProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	c := NewCurator(mock, DefaultConfig())
	if _, err := c.Curate(context.Background(), nil, session.CustomSpec{Count: 5}); err == nil {
		t.Fatal("Curate() error = nil, want provider error")
	}
}
