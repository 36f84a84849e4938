package tutor

import (
	"fmt"
	"strings"
)

const tutorSystemPrompt = `You are a patient exam-preparation tutor helping an adult self-study for a competitive general-studies exam.

Rules:
- Answer in plain prose, two to five sentences. No markdown, no headings, no bullet lists.
- Be concrete: name the fact, article, term, or figure that decides the question.
- For a wrong answer, explain the specific confusion behind the chosen option before restating why the correct option is right.
- For a hint, nudge toward the answer without revealing it.
- Never invent facts beyond the question, its options, and its stored explanation.`

func buildTutorMessage(input Input) string {
	q := input.Question

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%c. %s\n", 'A'+i, opt)
	}
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
		fmt.Fprintf(&b, "Correct answer: %c. %s\n", 'A'+q.CorrectIndex, q.Options[q.CorrectIndex])
	}
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Stored explanation: %s\n", q.Explanation)
	}

	switch input.Mode {
	case ModeHint:
		b.WriteString("\nGive a hint that points toward the answer without revealing it.")
	case ModeWhyWrong:
		if input.SelectedIndex >= 0 && input.SelectedIndex < len(q.Options) {
			fmt.Fprintf(&b, "\nThe learner chose %c. %s, which is wrong. Explain the likely confusion and why the correct answer is right.",
				'A'+input.SelectedIndex, q.Options[input.SelectedIndex])
		} else {
			b.WriteString("\nThe learner answered incorrectly. Explain why the correct answer is right.")
		}
	default:
		b.WriteString("\nExplain why the correct answer is right.")
	}

	return b.String()
}
