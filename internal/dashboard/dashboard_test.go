package dashboard

import (
	"fmt"
	"testing"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

func bankOf(n int) []quiz.Question {
	subjects := quiz.AllSubjects()
	out := make([]quiz.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, quiz.Question{
			ID:           fmt.Sprintf("q%02d", i),
			Text:         fmt.Sprintf("Question %d?", i),
			Options:      []string{"A", "B"},
			CorrectIndex: 0,
			Subject:      subjects[i%len(subjects)],
		})
	}
	return out
}

func attempt(id string, correct bool) quiz.Attempt {
	return quiz.Attempt{QuestionID: id, Correct: correct, TimeTakenSecs: 10}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name     string
		attempts []quiz.Attempt
		want     int
	}{
		{"empty history", nil, 0},
		{"latest incorrect", []quiz.Attempt{attempt("a", true), attempt("b", false)}, 0},
		{"suffix of two", []quiz.Attempt{attempt("a", false), attempt("b", true), attempt("c", true)}, 2},
		{"all correct", []quiz.Attempt{attempt("a", true), attempt("b", true), attempt("c", true)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.attempts); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSubjectProficiency_ZeroVsUnattempted(t *testing.T) {
	bank := bankOf(8)
	attempts := []quiz.Attempt{
		attempt("q00", false), // Polity: 0/1
		attempt("q01", true),  // Economy: 1/1
	}

	scores := SubjectProficiency(bank, attempts)
	if len(scores) != len(quiz.AllSubjects()) {
		t.Fatalf("scores = %d, want one per subject", len(scores))
	}

	byName := make(map[quiz.Subject]SubjectScore)
	for _, s := range scores {
		byName[s.Subject] = s
	}

	if p := byName[quiz.SubjectPolity]; p.Score != 0 || p.Total != 1 {
		t.Errorf("Polity = %d%% of %d, want 0%% of 1", p.Score, p.Total)
	}
	if e := byName[quiz.SubjectEconomy]; e.Score != 100 || e.Total != 1 {
		t.Errorf("Economy = %d%% of %d, want 100%% of 1", e.Score, e.Total)
	}
	// Zero attempts: score zero AND total zero, distinguishable from 0/1.
	if g := byName[quiz.SubjectGovernance]; g.Score != 0 || g.Total != 0 {
		t.Errorf("Governance = %d%% of %d, want 0%% of 0", g.Score, g.Total)
	}
}

func TestSubjectProficiency_DanglingAttempt(t *testing.T) {
	bank := bankOf(2)
	attempts := []quiz.Attempt{attempt("deleted-question", true)}
	for _, s := range SubjectProficiency(bank, attempts) {
		if s.Total != 0 {
			t.Errorf("%s total = %d, want 0 (dangling attempts skipped)", s.Subject, s.Total)
		}
	}
}

func TestAccuracyTrend_Chunks(t *testing.T) {
	var attempts []quiz.Attempt
	// 5 correct, then 5 alternating (3 correct), then 2 incorrect.
	for i := 0; i < 5; i++ {
		attempts = append(attempts, attempt("a", true))
	}
	for i := 0; i < 5; i++ {
		attempts = append(attempts, attempt("b", i%2 == 0))
	}
	attempts = append(attempts, attempt("c", false), attempt("d", false))

	points := AccuracyTrend(attempts)
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}

	want := []TrendPoint{
		{AttemptOrdinal: 5, AccuracyPct: 100},
		{AttemptOrdinal: 10, AccuracyPct: 60},
		{AttemptOrdinal: 12, AccuracyPct: 0},
	}
	for i, p := range points {
		if p != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestAccuracyTrend_Empty(t *testing.T) {
	if points := AccuracyTrend(nil); len(points) != 0 {
		t.Errorf("points = %v, want none", points)
	}
}

func TestCoverage_SumsToBankSize(t *testing.T) {
	bank := bankOf(6)
	attempts := []quiz.Attempt{
		attempt("q00", false),
		attempt("q00", true), // most recent correct -> mastered
		attempt("q01", true),
		attempt("q01", false), // most recent incorrect -> needs review
		attempt("q02", true),  // mastered
	}

	c := ComputeCoverage(bank, attempts)
	if c.Mastered != 2 || c.NeedsReview != 1 || c.Unseen != 3 {
		t.Errorf("coverage = %+v, want {2 1 3}", c)
	}
	if c.Mastered+c.NeedsReview+c.Unseen != len(bank) {
		t.Errorf("coverage does not sum to bank size")
	}
}

func TestWeakestSubject(t *testing.T) {
	bank := bankOf(8)
	attempts := []quiz.Attempt{
		attempt("q00", true),  // Polity 100%
		attempt("q01", false), // Economy 0%
		attempt("q02", false), // Governance 0%
	}

	weakest, ok := WeakestSubject(bank, attempts)
	if !ok {
		t.Fatal("expected a weakest subject")
	}
	// Economy and Governance tie at 0; Economy wins by enumeration order.
	if weakest != quiz.SubjectEconomy {
		t.Errorf("weakest = %s, want Economy (tie broken by enumeration order)", weakest)
	}

	if _, ok := WeakestSubject(bank, nil); ok {
		t.Error("expected no weakest subject without attempts")
	}
}

func TestComputeOverview(t *testing.T) {
	bank := bankOf(4)
	attempts := []quiz.Attempt{
		attempt("q00", true),
		attempt("q01", false),
	}
	o := ComputeOverview(bank, attempts)
	if o.TotalQuestions != 4 || o.TotalAttempts != 2 || o.Correct != 1 {
		t.Errorf("overview = %+v", o)
	}
	if o.AccuracyPct != 50 {
		t.Errorf("AccuracyPct = %d, want 50", o.AccuracyPct)
	}
	if o.AvgTimeSecs != 10 {
		t.Errorf("AvgTimeSecs = %v, want 10", o.AvgTimeSecs)
	}
}
