// Package llm provides the provider abstraction over LLM backends and the
// adapters for the OpenAI and Gemini APIs. The orchestrator in
// internal/analyzer only ever depends on the Provider interface.
package llm

import "time"

// Provider name strings surfaced to callers in analysis results.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	// ProviderNone marks results produced without any configured provider.
	ProviderNone = "none"
	// ProviderHeuristic marks results where every configured provider failed.
	ProviderHeuristic = "heuristic"
)

// Credentials holds provider API keys. They are injected explicitly at
// construction time rather than read from the environment inside call
// chains, so tests can supply fakes deterministically. An empty key means
// that provider tier is skipped entirely.
type Credentials struct {
	OpenAIKey string
	GeminiKey string
}

// Configured reports whether at least one provider credential is present.
func (c Credentials) Configured() bool {
	return c.OpenAIKey != "" || c.GeminiKey != ""
}

// Config holds model selection and call bounds shared by all providers.
type Config struct {
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiModel   string
	Timeout       time.Duration
}

// DefaultConfig returns the default provider configuration.
func DefaultConfig() *Config {
	return &Config{
		OpenAIModel:   "gpt-4o-mini",
		OpenAIBaseURL: "https://api.openai.com/v1",
		GeminiModel:   "gemini-2.5-flash",
		Timeout:       30 * time.Second,
	}
}

// Limits bounds a single generation call.
type Limits struct {
	MaxTokens   int
	Temperature float32
}
