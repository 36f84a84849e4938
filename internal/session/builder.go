package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/ratneshs230/prepdeck/internal/quiz"
)

// PageSize is the fixed question count for standard, adaptive and exam
// sessions. Custom sessions carry their own count.
const PageSize = 10

// ExamTimeLimitSecs is the countdown applied to exam sessions.
const ExamTimeLimitSecs = 7200

// CurationSampleCap bounds how many candidate questions are sent to the
// curator, keeping request payloads within provider limits.
const CurationSampleCap = 60

// Mode selects how a session is assembled and run.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeAdaptive Mode = "adaptive"
	ModeExam     Mode = "exam"
	ModeCustom   Mode = "custom"
)

// Session is one run through a fixed, pre-selected list of questions.
// The question list is a snapshot copy: bank edits after the build never
// reach an in-progress session.
type Session struct {
	ID            string          `json:"id"`
	Mode          Mode            `json:"mode"`
	Questions     []quiz.Question `json:"questions"`
	TimeLimitSecs int             `json:"timeLimitSecs,omitempty"`
	StartedAt     time.Time       `json:"startedAt"`
}

// CustomSpec holds the parameters for a custom (curated) session.
type CustomSpec struct {
	Count   int
	Subject quiz.Subject
	Focus   string
}

// Curator selects a subset of candidate questions matching a custom spec.
// Implementations are fallible and potentially slow; the builder treats any
// error as "curation unavailable" and falls back to random sampling.
type Curator interface {
	Curate(ctx context.Context, candidates []quiz.Question, spec CustomSpec) ([]string, error)
}

var (
	// ErrEmptyBank means no questions exist to build a session from.
	ErrEmptyBank = errors.New("question bank is empty — upload study material first")

	// ErrNoMatches means the custom filter matched no questions.
	ErrNoMatches = errors.New("no questions match the requested criteria")
)

// Builder assembles sessions from the question bank.
type Builder struct {
	curator Curator
	rng     *rand.Rand
}

// NewBuilder creates a builder. The curator may be nil when no AI provider
// is configured; custom sessions then always use the local fallback.
func NewBuilder(curator Curator) *Builder {
	return &Builder{
		curator: curator,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand overrides the random source. Tests use this for determinism.
func (b *Builder) WithRand(rng *rand.Rand) *Builder {
	b.rng = rng
	return b
}

// Build constructs a session from the bank for the given mode. The custom
// spec is consulted only for ModeCustom.
func (b *Builder) Build(ctx context.Context, bank []quiz.Question, history []quiz.Attempt, mode Mode, custom *CustomSpec) (*Session, error) {
	if len(bank) == 0 {
		return nil, ErrEmptyBank
	}

	var picked []quiz.Question
	timeLimit := 0

	switch mode {
	case ModeStandard:
		picked = b.shuffled(bank, PageSize)
	case ModeAdaptive:
		picked = adaptiveOrder(bank, history, PageSize)
	case ModeExam:
		picked = b.shuffled(bank, PageSize)
		timeLimit = ExamTimeLimitSecs
	case ModeCustom:
		if custom == nil {
			return nil, fmt.Errorf("custom mode requires a spec")
		}
		var err error
		picked, err = b.buildCustom(ctx, bank, *custom)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown session mode %q", mode)
	}

	if len(picked) == 0 {
		return nil, ErrNoMatches
	}

	return &Session{
		ID:            uuid.New().String(),
		Mode:          mode,
		Questions:     picked,
		TimeLimitSecs: timeLimit,
		StartedAt:     time.Now(),
	}, nil
}

// shuffled returns up to limit bank questions in a uniform random order
// (Fisher-Yates via rand.Shuffle; the source app's comparator-based shuffle
// was biased).
func (b *Builder) shuffled(bank []quiz.Question, limit int) []quiz.Question {
	idx := b.rng.Perm(len(bank))
	if limit > len(idx) {
		limit = len(idx)
	}
	out := make([]quiz.Question, 0, limit)
	for _, i := range idx[:limit] {
		out = append(out, bank[i].Clone())
	}
	return out
}

// adaptiveOrder stable-partitions the bank so questions with at least one
// prior incorrect attempt come first, then truncates to limit. Order within
// each partition is the bank's insertion order; there is no secondary
// shuffle, so recently uploaded questions keep whatever position the bank
// gives them.
func adaptiveOrder(bank []quiz.Question, history []quiz.Attempt, limit int) []quiz.Question {
	missed := make(map[string]bool)
	for _, a := range history {
		if !a.Correct {
			missed[a.QuestionID] = true
		}
	}

	out := make([]quiz.Question, 0, len(bank))
	for _, q := range bank {
		if missed[q.ID] {
			out = append(out, q.Clone())
		}
	}
	for _, q := range bank {
		if !missed[q.ID] {
			out = append(out, q.Clone())
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// buildCustom selects questions via the curator, falling back to a uniform
// random sample when curation is unavailable or fails.
func (b *Builder) buildCustom(ctx context.Context, bank []quiz.Question, spec CustomSpec) ([]quiz.Question, error) {
	candidates := filterSubject(bank, spec.Subject)
	if len(candidates) == 0 {
		return nil, ErrNoMatches
	}
	if spec.Count <= 0 {
		spec.Count = PageSize
	}

	if b.curator != nil {
		sample := candidates
		if len(sample) > CurationSampleCap {
			sample = sample[:CurationSampleCap]
		}
		ids, err := b.curator.Curate(ctx, sample, spec)
		if err == nil {
			resolved := resolve(ids, candidates)
			if len(resolved) > 0 {
				return resolved, nil
			}
			// Curator answered but nothing resolved against the bank.
			return nil, ErrNoMatches
		}
		// Curation failed: fall through to the local sample.
	}

	return b.sample(candidates, spec.Count), nil
}

// sample draws count distinct questions uniformly from the candidates.
func (b *Builder) sample(candidates []quiz.Question, count int) []quiz.Question {
	return b.shuffled(candidates, count)
}

// resolve maps curated IDs back to questions, discarding any ID not found.
func resolve(ids []string, candidates []quiz.Question) []quiz.Question {
	byID := make(map[string]quiz.Question, len(candidates))
	for _, q := range candidates {
		byID[q.ID] = q
	}
	out := make([]quiz.Question, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if q, ok := byID[id]; ok {
			out = append(out, q.Clone())
			seen[id] = true
		}
	}
	return out
}

func filterSubject(bank []quiz.Question, subject quiz.Subject) []quiz.Question {
	if subject == "" || subject == quiz.SubjectAll {
		return bank
	}
	var out []quiz.Question
	for _, q := range bank {
		if q.Subject == subject {
			out = append(out, q)
		}
	}
	return out
}
