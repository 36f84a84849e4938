package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config selects and configures the LLM provider.
type Config struct {
	// Provider is one of the Provider* constants.
	Provider string

	// APIKey is the credential for the selected provider. May come from
	// the environment or from the key stored in the local database.
	APIKey string

	// Model is a friendly name or a raw model ID. Empty selects the
	// provider's default.
	Model string

	// BaseURL overrides the OpenAI endpoint (for compatible gateways).
	BaseURL string

	Retry RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults: Gemini, three attempts, 30s timeout.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// FromEnv builds a Config from PREPDECK_* environment variables, falling
// back to defaults for unset values.
func FromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("PREPDECK_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if k := os.Getenv("PREPDECK_API_KEY"); k != "" {
		cfg.APIKey = k
	}
	if m := os.Getenv("PREPDECK_LLM_MODEL"); m != "" {
		cfg.Model = m
	}
	if u := os.Getenv("PREPDECK_LLM_BASE_URL"); u != "" {
		cfg.BaseURL = u
	}
	return cfg
}

// Discover probes the standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic) and returns a Config for the first provider
// whose key is found.
func Discover() (Config, bool) {
	cfg := DefaultConfig()
	probes := []struct {
		env      string
		provider string
	}{
		{"GEMINI_API_KEY", ProviderGemini},
		{"OPENAI_API_KEY", ProviderOpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			cfg.APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Resolve produces the effective config: explicit env settings first, then
// discovery of well-known key variables, then the key stored in the local
// database. ok is false when no credential could be found anywhere — AI
// features are then unavailable (not an error).
func Resolve(storedKey string) (Config, bool) {
	cfg := FromEnv()
	if cfg.Provider == ProviderMock {
		return cfg, true
	}
	if cfg.APIKey != "" {
		return cfg, true
	}
	if discovered, ok := Discover(); ok {
		return discovered, true
	}
	if storedKey != "" {
		cfg.APIKey = storedKey
		return cfg, true
	}
	return cfg, false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("no API key configured for the %s provider", c.Provider)
		}
	case ProviderMock:
		// No key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
