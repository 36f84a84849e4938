package extract

import "github.com/ratneshs230/prepdeck/internal/llm"

// ExtractionSchema defines the JSON schema for LLM extraction responses.
var ExtractionSchema = &llm.Schema{
	Name:        "mcq-extraction",
	Description: "Multiple-choice questions extracted from study material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_text": map[string]any{
							"type":        "string",
							"description": "The question as shown to the learner",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 answer options",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct answer is correct, grounded in the material",
						},
						// No enum constraints here: one off-enum value would
						// reject the whole response. Unknown values are
						// normalized per question at the ingestion boundary.
						"subject": map[string]any{
							"type":        "string",
							"description": "One of: Polity, Economy, Governance, General Awareness",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"description": "One of: Easy, Medium, Hard",
						},
						"source_tag": map[string]any{
							"type":        "string",
							"description": "Short phrase naming the source section or topic",
						},
						"topics": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "One to three topic keywords",
						},
					},
					"required": []any{"question_text", "options", "correct_index", "explanation", "subject", "difficulty", "source_tag", "topics"},
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
