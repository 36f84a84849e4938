// Package ingest reads study-material files from disk and runs them through
// question extraction, one file at a time. Each file produces exactly one
// document record, processed or failed, so a bad file in the middle of a
// batch never hides the results of the files around it.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

// Extractor produces questions from a document's text.
type Extractor interface {
	Extract(ctx context.Context, docName, text string) ([]quiz.Question, error)
}

// FileResult is the outcome for a single file in a batch.
type FileResult struct {
	Path      string
	Document  quiz.Document
	Questions []quiz.Question
	Err       error
}

// Pipeline runs file batches through extraction.
type Pipeline struct {
	extractor Extractor
	now       func() time.Time
}

func New(extractor Extractor) *Pipeline {
	return &Pipeline{extractor: extractor, now: time.Now}
}

// SupportedFile reports whether the path has an ingestable extension.
// Only plain text formats are accepted.
func SupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}

// Run processes a batch strictly in order. Every file yields a FileResult
// whether it succeeded or not; a failure is recorded and the batch moves
// on. progress, when non-nil, is called after each file completes.
func (p *Pipeline) Run(ctx context.Context, paths []string, progress func(FileResult)) []FileResult {
	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		res := p.runOne(ctx, path)
		results = append(results, res)
		if progress != nil {
			progress(res)
		}
	}
	return results
}

func (p *Pipeline) runOne(ctx context.Context, path string) FileResult {
	name := filepath.Base(path)
	doc := quiz.Document{
		ID:         uuid.NewString(),
		Name:       name,
		UploadedAt: p.now(),
		Status:     quiz.DocumentFailed,
	}
	res := FileResult{Path: path, Document: doc}

	if !SupportedFile(path) {
		res.Err = fmt.Errorf("unsupported file type %q (only .txt and .md)", filepath.Ext(path))
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", name, err)
		return res
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		res.Err = fmt.Errorf("%s is empty", name)
		return res
	}

	questions, err := p.extractor.Extract(ctx, name, text)
	if err != nil {
		res.Err = fmt.Errorf("extract from %s: %w", name, err)
		return res
	}

	for i := range questions {
		questions[i].DocumentID = res.Document.ID
	}
	res.Questions = questions
	res.Document.Status = quiz.DocumentProcessed
	res.Document.QuestionCount = len(questions)
	return res
}
