package state

import (
	"testing"
	"time"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

func testQuestion(id string) quiz.Question {
	return quiz.Question{
		ID:           id,
		Text:         "What does RBI stand for?",
		Options:      []string{"Reserve Bank of India", "Regional Bank of India"},
		CorrectIndex: 0,
		Subject:      quiz.SubjectEconomy,
		Difficulty:   quiz.DifficultyEasy,
		CreatedAt:    time.Now(),
	}
}

func TestAddQuestions_SkipsInvalid(t *testing.T) {
	c := New(quiz.AppState{})

	bad := testQuestion("bad")
	bad.Options = bad.Options[:1]

	n := c.AddQuestions([]quiz.Question{testQuestion("a"), bad, testQuestion("b")})
	if n != 2 {
		t.Errorf("accepted = %d, want 2", n)
	}
	if got := len(c.Questions()); got != 2 {
		t.Errorf("bank size = %d, want 2", got)
	}
}

func TestOnChange_FiresPerMutation(t *testing.T) {
	c := New(quiz.AppState{})
	var calls int
	var lastLen int
	c.OnChange = func(s quiz.AppState) {
		calls++
		lastLen = len(s.Questions)
	}

	c.AddQuestions([]quiz.Question{testQuestion("a")})
	c.RecordAttempts([]quiz.Attempt{{QuestionID: "a", Correct: true}})
	c.AddDocument(quiz.Document{ID: "d1", Name: "notes.txt"})

	if calls != 3 {
		t.Errorf("OnChange calls = %d, want 3", calls)
	}
	if lastLen != 1 {
		t.Errorf("snapshot question count = %d, want 1", lastLen)
	}
}

func TestOnChange_NotFiredOnNoop(t *testing.T) {
	c := New(quiz.AppState{})
	c.OnChange = func(quiz.AppState) {
		t.Error("OnChange fired for a no-op mutation")
	}

	c.RecordAttempts(nil)

	bad := testQuestion("bad")
	bad.Text = ""
	if n := c.AddQuestions([]quiz.Question{bad}); n != 0 {
		t.Errorf("accepted = %d, want 0", n)
	}
}

func TestDeleteQuestion(t *testing.T) {
	c := New(quiz.AppState{})
	c.AddQuestions([]quiz.Question{testQuestion("a"), testQuestion("b")})

	if err := c.DeleteQuestion("a"); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if err := c.DeleteQuestion("a"); err != ErrQuestionNotFound {
		t.Errorf("second delete = %v, want ErrQuestionNotFound", err)
	}

	qs := c.Questions()
	if len(qs) != 1 || qs[0].ID != "b" {
		t.Errorf("bank after delete = %v, want only b", qs)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := New(quiz.AppState{})
	c.AddQuestions([]quiz.Question{testQuestion("a")})

	snap := c.Snapshot()
	snap.Questions[0].Options[0] = "mutated"

	if c.Questions()[0].Options[0] == "mutated" {
		t.Error("snapshot aliases controller state")
	}
}
