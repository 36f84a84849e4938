package session

import (
	"math"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

// Summary is the derived result of one completed session. It is a pure
// projection of (session, attempts): recomputing it yields identical output.
type Summary struct {
	TotalQuestions int
	Attempted      int
	Correct        int

	// AccuracyPct is correct/attempted rounded to the nearest integer
	// percent; zero when nothing was attempted.
	AccuracyPct int

	// TotalTimeSecs is the sum of per-attempt time.
	TotalTimeSecs int

	// AvgTimeSecs is TotalTimeSecs divided by attempted count.
	AvgTimeSecs float64

	// Subjects is the per-subject breakdown in enumeration order. Session
	// questions with no attempt count toward Total but not Correct.
	Subjects []SubjectResult

	// Tier is the qualitative performance band for AccuracyPct.
	Tier string
}

// SubjectResult is one subject's slice of a session.
type SubjectResult struct {
	Subject quiz.Subject
	Correct int
	Total   int
}

// Performance tier thresholds, in descending order.
const (
	TierOutstanding = "Outstanding"
	TierStrong      = "Strong"
	TierDeveloping  = "Developing"
	TierBuilding    = "Keep Building"
)

// Summarize computes the session summary from its final attempt list.
func Summarize(sess *Session, attempts []quiz.Attempt) Summary {
	byID := make(map[string]quiz.Attempt, len(attempts))
	for _, a := range attempts {
		byID[a.QuestionID] = a
	}

	s := Summary{TotalQuestions: len(sess.Questions)}

	bySubject := make(map[quiz.Subject]*SubjectResult)
	order := quiz.AllSubjects()
	for _, sub := range order {
		bySubject[sub] = &SubjectResult{Subject: sub}
	}

	for _, q := range sess.Questions {
		sr := bySubject[q.Subject]
		if sr == nil {
			// Unknown subjects are clamped at ingestion, but stay safe.
			sr = &SubjectResult{Subject: q.Subject}
			bySubject[q.Subject] = sr
			order = append(order, q.Subject)
		}
		sr.Total++

		a, ok := byID[q.ID]
		if !ok {
			continue
		}
		s.Attempted++
		s.TotalTimeSecs += a.TimeTakenSecs
		if a.Correct {
			s.Correct++
			sr.Correct++
		}
	}

	if s.Attempted > 0 {
		s.AccuracyPct = RoundPct(s.Correct, s.Attempted)
		s.AvgTimeSecs = float64(s.TotalTimeSecs) / float64(s.Attempted)
	}
	s.Tier = AccuracyTier(s.AccuracyPct)

	for _, sub := range order {
		if sr := bySubject[sub]; sr.Total > 0 {
			s.Subjects = append(s.Subjects, *sr)
		}
	}

	return s
}

// AccuracyTier maps an integer accuracy percent to its performance band.
func AccuracyTier(pct int) string {
	switch {
	case pct >= 90:
		return TierOutstanding
	case pct >= 70:
		return TierStrong
	case pct >= 50:
		return TierDeveloping
	default:
		return TierBuilding
	}
}

// RoundPct returns 100*num/den rounded to the nearest integer, zero when
// den is zero.
func RoundPct(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}
