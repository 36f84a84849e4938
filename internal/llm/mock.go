package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned reply for MockProvider.
type MockResponse struct {
	Content string
	Err     error
}

// MockProvider replays queued responses in FIFO order. It records every
// request for test assertions and requires no API key.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// AddResponse queues a canned response.
func (p *MockProvider) AddResponse(r MockResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, r)
}

func (p *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Calls = append(p.Calls, req)

	if len(p.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: errNoResponses}
	}
	next := p.responses[0]
	p.responses = p.responses[1:]

	if next.Err != nil {
		return nil, next.Err
	}

	content := json.RawMessage(next.Content)
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    content,
		Model:      p.ModelID(),
		StopReason: "end",
		Usage:      Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30},
	}, nil
}

func (p *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns how many Generate calls have been made.
func (p *MockProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Calls)
}

var errNoResponses = &mockExhaustedError{}

type mockExhaustedError struct{}

func (*mockExhaustedError) Error() string { return "mock provider has no queued responses" }
