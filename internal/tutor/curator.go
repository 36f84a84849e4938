package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ratneshs230/prepdeck/internal/llm"
	"github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/ratneshs230/prepdeck/internal/session"
)

// Curator implements session.Curator on the LLM provider: given a sampled
// candidate list and the user's free-text focus, it picks the IDs of the
// best-matching questions.
type Curator struct {
	provider llm.Provider
	cfg      Config
}

func NewCurator(provider llm.Provider, cfg Config) *Curator {
	return &Curator{provider: provider, cfg: cfg}
}

// curationSchema constrains the curation response to an ID list.
var curationSchema = &llm.Schema{
	Name:        "session-curation",
	Description: "IDs of the candidate questions best matching the request",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_ids": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "IDs copied verbatim from the candidate list, best matches first",
			},
		},
		"required":             []any{"question_ids"},
		"additionalProperties": false,
	},
}

const curationSystemPrompt = `You are selecting practice questions for a focused study session.

Rules:
- Pick only from the candidate list. Copy question IDs verbatim; never invent IDs.
- Prefer questions whose text or topics match the stated focus.
- Return at most the requested count, best matches first.
- If fewer candidates genuinely match, return fewer. An empty list is acceptable.`

func (c *Curator) Curate(ctx context.Context, candidates []quiz.Question, spec session.CustomSpec) ([]string, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	ctx = llm.WithPurpose(ctx, "curate")

	req := llm.Request{
		System: curationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCurationMessage(candidates, spec)},
		},
		Schema:      curationSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("curation failed: %w", err)
	}

	var out struct {
		QuestionIDs []string `json:"question_ids"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse curation response: %w", err)
	}
	return out.QuestionIDs, nil
}

func buildCurationMessage(candidates []quiz.Question, spec session.CustomSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Requested count: %d\n", spec.Count)
	if spec.Subject != "" && spec.Subject != quiz.SubjectAll {
		fmt.Fprintf(&b, "Subject: %s\n", spec.Subject)
	}
	if spec.Focus != "" {
		fmt.Fprintf(&b, "Focus: %s\n", spec.Focus)
	}

	b.WriteString("\nCandidates:\n")
	for _, q := range candidates {
		fmt.Fprintf(&b, "- id=%s subject=%s topics=%s text=%s\n",
			q.ID, q.Subject, strings.Join(q.Topics, ","), q.Text)
	}
	return b.String()
}
