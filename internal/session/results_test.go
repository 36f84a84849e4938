package session

import (
	"reflect"
	"testing"
	"time"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

func TestSummarize_Basic(t *testing.T) {
	sess := practiceSession(4)
	attempts := []quiz.Attempt{
		{QuestionID: "q00", Correct: true, TimeTakenSecs: 10},
		{QuestionID: "q01", Correct: false, TimeTakenSecs: 20},
		{QuestionID: "q02", Correct: true, TimeTakenSecs: 6},
	}

	s := Summarize(sess, attempts)

	if s.TotalQuestions != 4 || s.Attempted != 3 || s.Correct != 2 {
		t.Errorf("counts = %d/%d/%d, want 4/3/2", s.TotalQuestions, s.Attempted, s.Correct)
	}
	if s.AccuracyPct != 67 {
		t.Errorf("AccuracyPct = %d, want 67", s.AccuracyPct)
	}
	if s.TotalTimeSecs != 36 {
		t.Errorf("TotalTimeSecs = %d, want 36", s.TotalTimeSecs)
	}
	if s.AvgTimeSecs != 12 {
		t.Errorf("AvgTimeSecs = %v, want 12", s.AvgTimeSecs)
	}
}

func TestSummarize_EmptyAttempts(t *testing.T) {
	s := Summarize(practiceSession(3), nil)
	if s.AccuracyPct != 0 {
		t.Errorf("AccuracyPct = %d, want 0 for zero attempts", s.AccuracyPct)
	}
	if s.Tier != TierBuilding {
		t.Errorf("Tier = %q, want %q", s.Tier, TierBuilding)
	}
}

func TestSummarize_UnattemptedCountTowardSubjectTotal(t *testing.T) {
	sess := practiceSession(4) // subjects cycle through the enumeration
	attempts := []quiz.Attempt{
		{QuestionID: "q00", Correct: true, TimeTakenSecs: 5}, // Polity
	}

	s := Summarize(sess, attempts)

	totals := 0
	for _, sr := range s.Subjects {
		totals += sr.Total
		if sr.Subject == quiz.SubjectPolity {
			if sr.Correct != 1 || sr.Total != 1 {
				t.Errorf("Polity = %d/%d, want 1/1", sr.Correct, sr.Total)
			}
		} else if sr.Correct != 0 {
			t.Errorf("%s correct = %d, want 0", sr.Subject, sr.Correct)
		}
	}
	if totals != 4 {
		t.Errorf("subject totals sum = %d, want 4 (unattempted still counted)", totals)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	sess := practiceSession(6)
	attempts := []quiz.Attempt{
		{QuestionID: "q00", Correct: true, TimeTakenSecs: 3, CreatedAt: time.Now()},
		{QuestionID: "q04", Correct: false, TimeTakenSecs: 9, CreatedAt: time.Now()},
	}

	a := Summarize(sess, attempts)
	b := Summarize(sess, attempts)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Summarize is not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestAccuracyTier_Bands(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, TierOutstanding},
		{90, TierOutstanding},
		{89, TierStrong},
		{70, TierStrong},
		{69, TierDeveloping},
		{50, TierDeveloping},
		{49, TierBuilding},
		{0, TierBuilding},
	}
	for _, tt := range tests {
		if got := AccuracyTier(tt.pct); got != tt.want {
			t.Errorf("AccuracyTier(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestRoundPct(t *testing.T) {
	tests := []struct {
		num, den, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := RoundPct(tt.num, tt.den); got != tt.want {
			t.Errorf("RoundPct(%d,%d) = %d, want %d", tt.num, tt.den, got, tt.want)
		}
	}
}
