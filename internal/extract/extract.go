package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ratneshs230/prepdeck/internal/llm"
	"github.com/ratneshs230/prepdeck/internal/quiz"
)

// Config controls the behavior of the Extractor.
type Config struct {
	// MaxInputChars caps how much document text goes into a single prompt.
	MaxInputChars int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended extraction defaults.
func DefaultConfig() Config {
	return Config{
		MaxInputChars: 24000,
		MaxTokens:     4096,
		Temperature:   0.3,
	}
}

// Extractor turns raw study material into multiple-choice questions via
// the LLM provider.
type Extractor struct {
	provider llm.Provider
	config   Config
	now      func() time.Time
}

// New creates an Extractor with the given provider and config.
func New(provider llm.Provider, cfg Config) *Extractor {
	return &Extractor{provider: provider, config: cfg, now: time.Now}
}

// questionOutput is the raw LLM response shape before validation.
type questionOutput struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Subject      string   `json:"subject"`
	Difficulty   string   `json:"difficulty"`
	SourceTag    string   `json:"source_tag"`
	Topics       []string `json:"topics"`
}

type extractionOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Extract produces questions from a document's text. Questions that fail
// basic shape checks are dropped; recoverable defects (out-of-range answer
// index, unknown subject or difficulty) are repaired in place. An empty
// result is not an error: some documents simply yield nothing usable.
func (e *Extractor) Extract(ctx context.Context, docName, text string) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, "extract")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(docName, text, e.config.MaxInputChars)},
		},
		Schema:      ExtractionSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM extraction failed: %w", err)
	}

	var raw extractionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	questions := make([]quiz.Question, 0, len(raw.Questions))
	for _, out := range raw.Questions {
		q := quiz.Question{
			ID:           uuid.NewString(),
			Text:         out.QuestionText,
			Options:      out.Options,
			CorrectIndex: out.CorrectIndex,
			Explanation:  out.Explanation,
			Subject:      quiz.Subject(out.Subject),
			Difficulty:   quiz.Difficulty(out.Difficulty),
			SourceTag:    out.SourceTag,
			Topics:       out.Topics,
			CreatedAt:    e.now(),
		}
		q.Clamp()
		if err := q.Validate(); err != nil {
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}
