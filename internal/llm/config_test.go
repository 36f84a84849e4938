package llm

import "testing"

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"PREPDECK_LLM_PROVIDER", "PREPDECK_API_KEY", "PREPDECK_LLM_MODEL",
		"PREPDECK_LLM_BASE_URL", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY",
	} {
		t.Setenv(v, "")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("PREPDECK_LLM_PROVIDER", "openai")
	t.Setenv("PREPDECK_API_KEY", "sk-test")
	t.Setenv("PREPDECK_LLM_MODEL", "gpt-4o")

	cfg := FromEnv()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want default 3", cfg.Retry.MaxAttempts)
	}
}

func TestDiscoverPriority(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")

	cfg, ok := Discover()
	if !ok {
		t.Fatal("Discover() ok = false")
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q, want openai (priority over anthropic)", cfg.Provider)
	}
	if cfg.APIKey != "openai-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

func TestDiscoverNothing(t *testing.T) {
	clearKeyEnv(t)
	if _, ok := Discover(); ok {
		t.Error("Discover() ok = true with no keys set")
	}
}

func TestResolveStoredKeyFallback(t *testing.T) {
	clearKeyEnv(t)

	cfg, ok := Resolve("stored-key")
	if !ok {
		t.Fatal("Resolve() ok = false with stored key available")
	}
	if cfg.APIKey != "stored-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want default gemini", cfg.Provider)
	}
}

func TestResolveEnvWinsOverStored(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("PREPDECK_API_KEY", "env-key")

	cfg, ok := Resolve("stored-key")
	if !ok {
		t.Fatal("Resolve() ok = false")
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.APIKey)
	}
}

func TestResolveNoCredential(t *testing.T) {
	clearKeyEnv(t)
	if _, ok := Resolve(""); ok {
		t.Error("Resolve() ok = true with no credential anywhere")
	}
}

func TestResolveMockNeedsNoKey(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("PREPDECK_LLM_PROVIDER", "mock")

	cfg, ok := Resolve("")
	if !ok {
		t.Fatal("Resolve() ok = false for mock provider")
	}
	if cfg.Provider != ProviderMock {
		t.Errorf("Provider = %q", cfg.Provider)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic with key", Config{Provider: ProviderAnthropic, APIKey: "k"}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"mock without key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "llama-farm"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
