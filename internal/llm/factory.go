package llm

import (
	"context"
	"fmt"

	"github.com/ratneshs230/prepdeck/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// event-logging middleware (caller -> retry -> logging -> base).
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithEventLog(base, events), cfg.Retry), nil
}

// resolveModel maps a friendly model name to a provider model ID, passing
// unknown names through so raw model IDs keep working.
func resolveModel(name string, models map[string]string, fallback string) string {
	if name == "" {
		return fallback
	}
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
