package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// openaiSystemPrompt steers the analysis model toward compact JSON replies.
const openaiSystemPrompt = "You analyze resumes for recruiters. Always return valid JSON and keep arrays concise (max 8 entries)."

// OpenAIProvider implements Provider against the OpenAI chat-completions
// API over plain HTTP. Any OpenAI-compatible endpoint works via
// Config.OpenAIBaseURL.
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(apiKey string, config *Config) *OpenAIProvider {
	if config == nil {
		config = DefaultConfig()
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(config.OpenAIBaseURL, "/"),
		model:   config.OpenAIModel,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// GenerateJSON requests structured JSON output via the json_object
// response format.
func (p *OpenAIProvider) GenerateJSON(ctx context.Context, prompt string, limits Limits) (string, error) {
	req := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: openaiSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    limits.Temperature,
		MaxTokens:      limits.MaxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	reply, err := p.complete(ctx, req)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(reply), nil
}

// GenerateText requests a free-form reply with an explicit system message.
func (p *OpenAIProvider) GenerateText(ctx context.Context, systemPrompt, userPrompt string, limits Limits) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	reply, err := p.complete(ctx, chatRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: limits.Temperature,
		MaxTokens:   limits.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Close is a no-op; the HTTP client holds no per-provider resources.
func (p *OpenAIProvider) Close() error {
	return nil
}

func (p *OpenAIProvider) complete(ctx context.Context, payload chatRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &TransportError{Provider: ProviderOpenAI, Message: "marshal request", Cause: err}
	}

	endpoint := p.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Provider: ProviderOpenAI, Message: "new request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Provider: ProviderOpenAI, Message: "http request", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", p.classifyHTTPError(resp)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TransportError{Provider: ProviderOpenAI, Message: "decode response", Cause: err}
	}
	if len(out.Choices) == 0 {
		return "", &TransportError{Provider: ProviderOpenAI, Message: "no choices returned"}
	}
	return out.Choices[0].Message.Content, nil
}

// classifyHTTPError maps the API error body onto the shared taxonomy.
// HTTP 429 and the insufficient_quota / rate_limit_exceeded codes signal
// quota exhaustion; everything else is a transport error.
func (p *OpenAIProvider) classifyHTTPError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var parsed apiError
	_ = json.Unmarshal(raw, &parsed)

	code := parsed.Error.Code
	if code == "" {
		code = parsed.Error.Type
	}

	if resp.StatusCode == http.StatusTooManyRequests || code == "insufficient_quota" || code == "rate_limit_exceeded" {
		message := parsed.Error.Message
		if message == "" {
			message = resp.Status
		}
		return &QuotaError{Provider: ProviderOpenAI, Message: message}
	}

	return &TransportError{
		Provider: ProviderOpenAI,
		Message:  fmt.Sprintf("%s: %s", resp.Status, strings.TrimSpace(string(raw))),
	}
}
