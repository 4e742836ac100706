package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider for Google Gemini.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey string, config *Config) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:  client,
		model:   config.GeminiModel,
		timeout: config.Timeout,
	}, nil
}

// callContext bounds a generation call. The genai client has no per-call
// timeout of its own, so the deadline comes from the call context.
func (p *GeminiProvider) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := p.timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// GenerateJSON generates structured JSON output.
func (p *GeminiProvider) GenerateJSON(ctx context.Context, prompt string, limits Limits) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(limits.Temperature)
	if limits.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(limits.MaxTokens))
	}
	model.ResponseMIMEType = "application/json"

	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", p.wrapError(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &TransportError{Provider: ProviderGemini, Message: "empty response", Cause: err}
	}
	return CleanJSONBlock(text), nil
}

// GenerateText generates a free-form reply. Gemini has no system role in
// this API surface, so the system prompt is prepended to the user prompt.
func (p *GeminiProvider) GenerateText(ctx context.Context, systemPrompt, userPrompt string, limits Limits) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(limits.Temperature)
	if limits.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(limits.MaxTokens))
	}

	prompt := userPrompt
	if systemPrompt != "" {
		prompt = systemPrompt + "\n\n" + userPrompt
	}

	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", p.wrapError(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &TransportError{Provider: ProviderGemini, Message: "empty response", Cause: err}
	}
	return strings.TrimSpace(text), nil
}

// Close releases the underlying genai client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// wrapError classifies genai errors into the shared taxonomy. The SDK does
// not expose a stable quota error type, so classification is by message.
func (p *GeminiProvider) wrapError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted") {
		return &QuotaError{Provider: ProviderGemini, Message: err.Error()}
	}
	return &TransportError{Provider: ProviderGemini, Message: "generate content", Cause: err}
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
