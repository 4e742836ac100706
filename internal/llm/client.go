package llm

import "context"

// Provider is the uniform capability interface over LLM backends. The
// OpenAI and Gemini clients differ in wire shape; adapters flatten both to
// these two calls so the orchestrator can try them interchangeably.
type Provider interface {
	// Name returns the provider identifier surfaced in results.
	Name() string
	// GenerateJSON asks the model for structured JSON output bound by limits.
	// The returned text may still carry conversational wrapping; callers are
	// expected to run it through CleanJSONBlock/ExtractJSONObject.
	GenerateJSON(ctx context.Context, prompt string, limits Limits) (string, error)
	// GenerateText asks the model for a free-form reply. systemPrompt may be
	// empty; adapters without a system role fold it into the user prompt.
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, limits Limits) (string, error)
	// Close releases any resources held by the provider client.
	Close() error
}

// NewProviders builds the fallback chain from configured credentials, in
// fixed priority order: OpenAI first, Gemini second. Unconfigured providers
// are skipped, not counted as failures.
func NewProviders(ctx context.Context, creds Credentials, config *Config) ([]Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	providers := make([]Provider, 0, 2)
	if creds.OpenAIKey != "" {
		providers = append(providers, NewOpenAIProvider(creds.OpenAIKey, config))
	}
	if creds.GeminiKey != "" {
		gemini, err := NewGeminiProvider(ctx, creds.GeminiKey, config)
		if err != nil {
			return nil, err
		}
		providers = append(providers, gemini)
	}
	return providers, nil
}

// CloseAll closes every provider, ignoring individual close errors.
func CloseAll(providers []Provider) {
	for _, p := range providers {
		_ = p.Close()
	}
}
