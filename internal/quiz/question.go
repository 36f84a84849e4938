package quiz

import (
	"fmt"
	"time"
)

// Subject is the fixed syllabus area a question belongs to.
type Subject string

const (
	SubjectPolity           Subject = "Polity"
	SubjectEconomy          Subject = "Economy"
	SubjectGovernance       Subject = "Governance"
	SubjectGeneralAwareness Subject = "General Awareness"

	// SubjectAll is a filter sentinel, never stored on a question.
	SubjectAll Subject = "All"
)

// AllSubjects returns the subject enumeration in its canonical order.
// Callers that break ties by subject rely on this ordering.
func AllSubjects() []Subject {
	return []Subject{
		SubjectPolity,
		SubjectEconomy,
		SubjectGovernance,
		SubjectGeneralAwareness,
	}
}

// IsValidSubject reports whether s is a storable subject value.
func IsValidSubject(s Subject) bool {
	for _, known := range AllSubjects() {
		if s == known {
			return true
		}
	}
	return false
}

// Difficulty is the question's difficulty rating.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValidDifficulty reports whether d is a known difficulty value.
func IsValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is a single multiple-choice question in the bank.
// Questions are immutable once created; the bank only ever appends them
// or removes them on explicit user deletion.
type Question struct {
	// ID is the unique question identifier (UUID string).
	ID string `json:"id"`

	// Text is the question prompt.
	Text string `json:"text"`

	// Options is the ordered list of answer options. At least 2, commonly 4.
	Options []string `json:"options"`

	// CorrectIndex is the zero-based index of the correct option.
	// Invariant: 0 <= CorrectIndex < len(Options).
	CorrectIndex int `json:"correctIndex"`

	// Explanation is the worked explanation shown after answering.
	Explanation string `json:"explanation"`

	// Subject is one of the fixed subject enumeration.
	Subject Subject `json:"subject"`

	// Difficulty is Easy, Medium or Hard.
	Difficulty Difficulty `json:"difficulty"`

	// SourceTag is an optional month/year provenance tag, e.g. "May 2024".
	SourceTag string `json:"sourceTag,omitempty"`

	// Topics is a list of free-text topic tags.
	Topics []string `json:"topics,omitempty"`

	// DocumentID references the originating document, if any.
	DocumentID string `json:"documentId,omitempty"`

	// CreatedAt is when the question entered the bank.
	CreatedAt time.Time `json:"createdAt"`
}

// MinOptions is the smallest option list a question may carry.
const MinOptions = 2

// Validate checks the structural invariants a question must satisfy
// before it is allowed into the bank.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has no ID")
	}
	if q.Text == "" {
		return fmt.Errorf("question %s has empty text", q.ID)
	}
	if len(q.Options) < MinOptions {
		return fmt.Errorf("question %s has %d options, need at least %d", q.ID, len(q.Options), MinOptions)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %s correct index %d out of range [0,%d)", q.ID, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// Clamp normalizes recoverable field violations in place: an out-of-range
// correct index is clamped into the option range, and unknown subject or
// difficulty values fall back to defaults. Structural problems (too few
// options, empty text) are not recoverable and remain for Validate to catch.
func (q *Question) Clamp() {
	if n := len(q.Options); n > 0 {
		if q.CorrectIndex < 0 {
			q.CorrectIndex = 0
		}
		if q.CorrectIndex >= n {
			q.CorrectIndex = n - 1
		}
	}
	if !IsValidSubject(q.Subject) {
		q.Subject = SubjectGeneralAwareness
	}
	if !IsValidDifficulty(q.Difficulty) {
		q.Difficulty = DifficultyMedium
	}
}

// Clone returns a deep copy of the question. Sessions snapshot questions
// so later bank edits never mutate an in-progress run.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	out.Topics = append([]string(nil), q.Topics...)
	return out
}
