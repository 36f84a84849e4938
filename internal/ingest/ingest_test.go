package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

type stubExtractor struct {
	perDoc map[string][]quiz.Question
	err    error
	calls  []string
}

func (s *stubExtractor) Extract(_ context.Context, docName, _ string) ([]quiz.Question, error) {
	s.calls = append(s.calls, docName)
	if s.err != nil {
		return nil, s.err
	}
	return s.perDoc[docName], nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleQuestion(id string) quiz.Question {
	return quiz.Question{
		ID:           id,
		Text:         "Q?",
		Options:      []string{"a", "b"},
		CorrectIndex: 0,
		Subject:      quiz.SubjectPolity,
		Difficulty:   quiz.DifficultyEasy,
	}
}

func TestRunProcessesBatchInOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha material")
	b := writeFile(t, dir, "b.md", "beta material")

	ext := &stubExtractor{perDoc: map[string][]quiz.Question{
		"a.txt": {sampleQuestion("q1"), sampleQuestion("q2")},
		"b.md":  {sampleQuestion("q3")},
	}}

	results := New(ext).Run(context.Background(), []string{a, b}, nil)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if len(ext.calls) != 2 || ext.calls[0] != "a.txt" || ext.calls[1] != "b.md" {
		t.Errorf("extraction order = %v", ext.calls)
	}
	if results[0].Document.Status != quiz.DocumentProcessed {
		t.Errorf("a.txt status = %s", results[0].Document.Status)
	}
	if results[0].Document.QuestionCount != 2 {
		t.Errorf("a.txt question count = %d", results[0].Document.QuestionCount)
	}
	for _, q := range results[0].Questions {
		if q.DocumentID != results[0].Document.ID {
			t.Errorf("question %s not tagged with document ID", q.ID)
		}
	}
}

func TestRunPartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "material")
	missing := filepath.Join(dir, "missing.txt")

	ext := &stubExtractor{perDoc: map[string][]quiz.Question{
		"good.txt": {sampleQuestion("q1")},
	}}

	results := New(ext).Run(context.Background(), []string{missing, good}, nil)
	if results[0].Err == nil {
		t.Error("missing file should fail")
	}
	if results[0].Document.Status != quiz.DocumentFailed {
		t.Errorf("missing file status = %s", results[0].Document.Status)
	}
	if results[1].Err != nil {
		t.Errorf("good file errored: %v", results[1].Err)
	}
	if results[1].Document.Status != quiz.DocumentProcessed {
		t.Errorf("good file status = %s", results[1].Document.Status)
	}
}

func TestRunRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	pdf := writeFile(t, dir, "notes.pdf", "binaryish")

	ext := &stubExtractor{}
	results := New(ext).Run(context.Background(), []string{pdf}, nil)
	if results[0].Err == nil {
		t.Error("pdf should be rejected")
	}
	if len(ext.calls) != 0 {
		t.Error("extractor should not run for unsupported files")
	}
}

func TestRunRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", "   \n")

	ext := &stubExtractor{}
	results := New(ext).Run(context.Background(), []string{empty}, nil)
	if results[0].Err == nil {
		t.Error("empty file should fail")
	}
	if results[0].Document.Status != quiz.DocumentFailed {
		t.Errorf("status = %s", results[0].Document.Status)
	}
}

func TestRunExtractorErrorRecordedAsFailedDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "material")

	ext := &stubExtractor{err: errors.New("provider down")}
	results := New(ext).Run(context.Background(), []string{path}, nil)
	if results[0].Err == nil {
		t.Fatal("expected error")
	}
	if results[0].Document.Status != quiz.DocumentFailed {
		t.Errorf("status = %s", results[0].Document.Status)
	}
	if results[0].Document.Name != "notes.txt" {
		t.Errorf("document name = %q", results[0].Document.Name)
	}
}

func TestRunProgressCallback(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "material")
	b := writeFile(t, dir, "b.txt", "material")

	ext := &stubExtractor{perDoc: map[string][]quiz.Question{}}
	var seen []string
	New(ext).Run(context.Background(), []string{a, b}, func(r FileResult) {
		seen = append(seen, r.Document.Name)
	})
	if len(seen) != 2 || seen[0] != "a.txt" || seen[1] != "b.txt" {
		t.Errorf("progress calls = %v", seen)
	}
}

func TestSupportedFile(t *testing.T) {
	cases := map[string]bool{
		"notes.txt": true,
		"NOTES.MD":  true,
		"deck.pdf":  false,
		"plain":     false,
	}
	for path, want := range cases {
		if got := SupportedFile(path); got != want {
			t.Errorf("SupportedFile(%q) = %v, want %v", path, got, want)
		}
	}
}
