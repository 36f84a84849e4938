package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const systemPrompt = `You are an exam-preparation content author creating multiple-choice questions from study material.

Rules:
- Extract as many high-quality questions as the material genuinely supports. Do not pad with trivial or repetitive questions. Zero questions is acceptable for unsuitable material.
- Every question must be answerable from the supplied text alone. Never invent facts the text does not state.
- Provide exactly 4 options where exactly one is correct. Distractors should be plausible and reflect common confusions, not random values.
- correct_index is the zero-based position of the correct option.
- The explanation should justify the correct answer in two or three sentences, citing the relevant fact from the material.
- Classify each question into one subject: Polity, Economy, Governance, or General Awareness.
- Rate difficulty as Easy, Medium, or Hard based on how directly the text states the answer.
- source_tag is a short phrase naming the section or topic of the material the question came from.
- topics is a list of one to three short topic keywords.`

// buildUserMessage assembles the extraction prompt, truncating the document
// text at maxChars so one oversized file cannot blow the token budget.
func buildUserMessage(docName, text string, maxChars int) string {
	if maxChars > 0 && len(text) > maxChars {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Document: %s\n\n", docName)
	b.WriteString("Material:\n")
	b.WriteString(text)
	return b.String()
}
