// Package dashboard derives longitudinal statistics from the full attempt
// history. Every function here is a pure projection of (questions, attempts);
// nothing mutates the inputs.
package dashboard

import (
	"github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/ratneshs230/prepdeck/internal/session"
)

// TrendChunkSize is the number of attempts per accuracy-trend point.
const TrendChunkSize = 5

// Overview holds the headline lifetime numbers.
type Overview struct {
	TotalQuestions int
	TotalAttempts  int
	Correct        int
	AccuracyPct    int
	AvgTimeSecs    float64
}

// SubjectScore is one subject's lifetime proficiency. A zero Score with a
// zero Total means "no attempts", not "always wrong" — callers distinguish
// the two by Total.
type SubjectScore struct {
	Subject quiz.Subject
	Score   int
	Correct int
	Total   int
}

// TrendPoint is one accuracy-trend sample: the ordinal position (1-based)
// of the chunk's last attempt and the chunk's rounded accuracy percent.
type TrendPoint struct {
	AttemptOrdinal int
	AccuracyPct    int
}

// Coverage is the three-way bank breakdown. Mastered + NeedsReview + Unseen
// always equals the bank size.
type Coverage struct {
	Mastered    int
	NeedsReview int
	Unseen      int
}

// ComputeOverview aggregates lifetime accuracy and timing.
func ComputeOverview(questions []quiz.Question, attempts []quiz.Attempt) Overview {
	o := Overview{
		TotalQuestions: len(questions),
		TotalAttempts:  len(attempts),
	}
	totalTime := 0
	for _, a := range attempts {
		if a.Correct {
			o.Correct++
		}
		totalTime += a.TimeTakenSecs
	}
	o.AccuracyPct = session.RoundPct(o.Correct, o.TotalAttempts)
	if o.TotalAttempts > 0 {
		o.AvgTimeSecs = float64(totalTime) / float64(o.TotalAttempts)
	}
	return o
}

// Streak returns the length of the maximal all-correct suffix of the
// attempt history in recording order.
func Streak(attempts []quiz.Attempt) int {
	streak := 0
	for i := len(attempts) - 1; i >= 0; i-- {
		if !attempts[i].Correct {
			break
		}
		streak++
	}
	return streak
}

// SubjectProficiency scores every subject in the fixed enumeration,
// including subjects with no attempts (Score 0, Total 0).
func SubjectProficiency(questions []quiz.Question, attempts []quiz.Attempt) []SubjectScore {
	subjectOf := make(map[string]quiz.Subject, len(questions))
	for _, q := range questions {
		subjectOf[q.ID] = q.Subject
	}

	tally := make(map[quiz.Subject]*SubjectScore)
	out := make([]SubjectScore, 0, len(quiz.AllSubjects()))
	for _, s := range quiz.AllSubjects() {
		tally[s] = &SubjectScore{Subject: s}
	}

	for _, a := range attempts {
		subject, ok := subjectOf[a.QuestionID]
		if !ok {
			continue // question was deleted from the bank
		}
		sc := tally[subject]
		if sc == nil {
			continue
		}
		sc.Total++
		if a.Correct {
			sc.Correct++
		}
	}

	for _, s := range quiz.AllSubjects() {
		sc := tally[s]
		sc.Score = session.RoundPct(sc.Correct, sc.Total)
		out = append(out, *sc)
	}
	return out
}

// AccuracyTrend partitions the history, in recording order, into chunks of
// TrendChunkSize (the final chunk may be shorter) and emits one point per
// chunk.
func AccuracyTrend(attempts []quiz.Attempt) []TrendPoint {
	var points []TrendPoint
	for start := 0; start < len(attempts); start += TrendChunkSize {
		end := start + TrendChunkSize
		if end > len(attempts) {
			end = len(attempts)
		}
		correct := 0
		for _, a := range attempts[start:end] {
			if a.Correct {
				correct++
			}
		}
		points = append(points, TrendPoint{
			AttemptOrdinal: end,
			AccuracyPct:    session.RoundPct(correct, end-start),
		})
	}
	return points
}

// ComputeCoverage classifies every bank question: mastered when its most
// recent attempt (by recording order) was correct, needs-review otherwise,
// unseen with no attempts at all.
func ComputeCoverage(questions []quiz.Question, attempts []quiz.Attempt) Coverage {
	lastCorrect := make(map[string]bool)
	seen := make(map[string]bool)
	for _, a := range attempts {
		seen[a.QuestionID] = true
		lastCorrect[a.QuestionID] = a.Correct
	}

	var c Coverage
	for _, q := range questions {
		switch {
		case !seen[q.ID]:
			c.Unseen++
		case lastCorrect[q.ID]:
			c.Mastered++
		default:
			c.NeedsReview++
		}
	}
	return c
}

// WeakestSubject returns the attempted subject with the lowest proficiency
// score, ties resolved by enumeration order. ok is false when no subject
// has any attempts.
func WeakestSubject(questions []quiz.Question, attempts []quiz.Attempt) (quiz.Subject, bool) {
	var weakest quiz.Subject
	lowest := 101
	found := false
	for _, sc := range SubjectProficiency(questions, attempts) {
		if sc.Total == 0 {
			continue
		}
		if sc.Score < lowest {
			lowest = sc.Score
			weakest = sc.Subject
			found = true
		}
	}
	return weakest, found
}
