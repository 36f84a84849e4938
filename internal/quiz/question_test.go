package quiz

import "testing"

func validQuestion() Question {
	return Question{
		ID:           "q1",
		Text:         "Which article of the Constitution abolishes untouchability?",
		Options:      []string{"Article 14", "Article 17", "Article 19", "Article 21"},
		CorrectIndex: 1,
		Explanation:  "Article 17 abolishes untouchability and forbids its practice.",
		Subject:      SubjectPolity,
		Difficulty:   DifficultyEasy,
	}
}

func TestValidate_OK(t *testing.T) {
	q := validQuestion()
	if err := q.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Question)
	}{
		{"empty text", func(q *Question) { q.Text = "" }},
		{"no ID", func(q *Question) { q.ID = "" }},
		{"one option", func(q *Question) { q.Options = q.Options[:1] }},
		{"index too high", func(q *Question) { q.CorrectIndex = 4 }},
		{"negative index", func(q *Question) { q.CorrectIndex = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			if err := q.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestClamp_CorrectIndex(t *testing.T) {
	q := validQuestion()
	q.CorrectIndex = 9
	q.Clamp()
	if q.CorrectIndex != len(q.Options)-1 {
		t.Errorf("CorrectIndex = %d, want %d", q.CorrectIndex, len(q.Options)-1)
	}

	q.CorrectIndex = -3
	q.Clamp()
	if q.CorrectIndex != 0 {
		t.Errorf("CorrectIndex = %d, want 0", q.CorrectIndex)
	}
}

func TestClamp_UnknownEnums(t *testing.T) {
	q := validQuestion()
	q.Subject = Subject("Astrology")
	q.Difficulty = Difficulty("Brutal")
	q.Clamp()

	if q.Subject != SubjectGeneralAwareness {
		t.Errorf("Subject = %q, want %q", q.Subject, SubjectGeneralAwareness)
	}
	if q.Difficulty != DifficultyMedium {
		t.Errorf("Difficulty = %q, want %q", q.Difficulty, DifficultyMedium)
	}
}

func TestClone_Independence(t *testing.T) {
	q := validQuestion()
	c := q.Clone()
	c.Options[0] = "mutated"
	if q.Options[0] == "mutated" {
		t.Error("Clone shares the options slice with the original")
	}
}
