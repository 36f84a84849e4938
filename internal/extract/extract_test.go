package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ratneshs230/prepdeck/internal/llm"
	"github.com/ratneshs230/prepdeck/internal/quiz"
)

func validPayload() string {
	return `{
		"questions": [
			{
				"question_text": "Which article establishes the office of the President?",
				"options": ["Article 52", "Article 72", "Article 112", "Article 356"],
				"correct_index": 0,
				"explanation": "Article 52 states that there shall be a President of India.",
				"subject": "Polity",
				"difficulty": "Easy",
				"source_tag": "Union Executive",
				"topics": ["president", "executive"]
			}
		]
	}`
}

func TestExtractValidQuestion(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: validPayload()})

	ex := New(mock, DefaultConfig())
	qs, err := ex.Extract(context.Background(), "notes.txt", "material")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	q := qs[0]
	if q.ID == "" {
		t.Error("question ID not assigned")
	}
	if q.Subject != quiz.SubjectPolity {
		t.Errorf("Subject = %q", q.Subject)
	}
	if q.CorrectIndex != 0 {
		t.Errorf("CorrectIndex = %d", q.CorrectIndex)
	}
	if q.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestExtractClampsOutOfRangeIndex(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: `{
		"questions": [{
			"question_text": "Pick one.",
			"options": ["a", "b", "c", "d"],
			"correct_index": 9,
			"explanation": "x",
			"subject": "Economy",
			"difficulty": "Medium",
			"source_tag": "t",
			"topics": ["t"]
		}]
	}`})

	ex := New(mock, DefaultConfig())
	qs, err := ex.Extract(context.Background(), "doc", "text")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if got := qs[0].CorrectIndex; got < 0 || got >= len(qs[0].Options) {
		t.Errorf("CorrectIndex = %d, not clamped into range", got)
	}
}

func TestExtractNormalizesUnknownEnums(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: `{
		"questions": [{
			"question_text": "Pick one.",
			"options": ["a", "b"],
			"correct_index": 1,
			"explanation": "x",
			"subject": "Astrology",
			"difficulty": "Brutal",
			"source_tag": "t",
			"topics": []
		}]
	}`})

	ex := New(mock, DefaultConfig())
	qs, err := ex.Extract(context.Background(), "doc", "text")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if qs[0].Subject != quiz.SubjectGeneralAwareness {
		t.Errorf("Subject = %q, want General Awareness fallback", qs[0].Subject)
	}
	if qs[0].Difficulty != quiz.DifficultyMedium {
		t.Errorf("Difficulty = %q, want Medium fallback", qs[0].Difficulty)
	}
}

func TestExtractDropsMalformedQuestions(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: `{
		"questions": [
			{
				"question_text": "",
				"options": ["a", "b", "c", "d"],
				"correct_index": 0,
				"explanation": "x",
				"subject": "Polity",
				"difficulty": "Easy",
				"source_tag": "t",
				"topics": []
			},
			{
				"question_text": "One option only.",
				"options": ["a"],
				"correct_index": 0,
				"explanation": "x",
				"subject": "Polity",
				"difficulty": "Easy",
				"source_tag": "t",
				"topics": []
			},
			{
				"question_text": "Fine question.",
				"options": ["a", "b"],
				"correct_index": 0,
				"explanation": "x",
				"subject": "Governance",
				"difficulty": "Hard",
				"source_tag": "t",
				"topics": []
			}
		]
	}`})

	ex := New(mock, DefaultConfig())
	qs, err := ex.Extract(context.Background(), "doc", "text")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1 (malformed dropped)", len(qs))
	}
	if qs[0].Text != "Fine question." {
		t.Errorf("kept wrong question: %q", qs[0].Text)
	}
}

func TestExtractEmptyResultIsLegal(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: `{"questions": []}`})

	ex := New(mock, DefaultConfig())
	qs, err := ex.Extract(context.Background(), "doc", "text")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("got %d questions, want 0", len(qs))
	}
}

func TestExtractProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})

	ex := New(mock, DefaultConfig())
	if _, err := ex.Extract(context.Background(), "doc", "text"); err == nil {
		t.Fatal("Extract() error = nil, want provider error")
	}
}

func TestBuildUserMessageTruncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	msg := buildUserMessage("doc", long, 100)
	if strings.Count(msg, "x") != 100 {
		t.Errorf("got %d chars of body, want truncation at 100", strings.Count(msg, "x"))
	}
}

func TestBuildUserMessageTruncatesOnRuneBoundary(t *testing.T) {
	// "é" is two bytes; a limit of 5 lands mid-rune and must back off.
	long := strings.Repeat("é", 10)
	msg := buildUserMessage("doc", long, 5)
	if !utf8.ValidString(msg) {
		t.Fatal("truncated message contains a split rune")
	}
	if got := strings.Count(msg, "é"); got != 2 {
		t.Errorf("got %d runes of body, want 2", got)
	}
}
