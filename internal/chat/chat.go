// Package chat implements the conversational assistant: the same two-tier
// provider fallback as the analyzer, terminated by a deterministic
// rule-based responder that never fails.
package chat

import (
	"context"
	"log"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Generation limits for conversational replies.
const (
	chatMaxTokens   = 300
	chatTemperature = 0.7
)

// Message is one prior turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Context carries optional prior analysis and conversation history used to
// enrich prompts and rule-based answers. It is read-only for the responder.
type Context struct {
	Analysis *types.Insights `json:"analysis,omitempty"`
	History  []Message       `json:"history,omitempty"`
}

// Reply is a chat answer plus the tier that produced it.
type Reply struct {
	Response string `json:"response"`
	Provider string `json:"provider"`
}

// Responder holds the provider fallback chain for chat.
type Responder struct {
	providers []llm.Provider
}

// New builds a responder from explicit credentials.
func New(ctx context.Context, creds llm.Credentials, config *llm.Config) (*Responder, error) {
	providers, err := llm.NewProviders(ctx, creds, config)
	if err != nil {
		return nil, err
	}
	return NewWithProviders(providers...), nil
}

// NewWithProviders builds a responder over an explicit provider chain.
func NewWithProviders(providers ...llm.Provider) *Responder {
	return &Responder{providers: providers}
}

// Close releases provider resources.
func (r *Responder) Close() {
	llm.CloseAll(r.providers)
}

// Respond answers a user message. Providers are tried in priority order
// with provider-specific prompts; if all are absent or fail, the
// deterministic rule tier answers. Respond never fails.
func (r *Responder) Respond(ctx context.Context, message string, chatCtx *Context) *Reply {
	limits := llm.Limits{MaxTokens: chatMaxTokens, Temperature: chatTemperature}
	digest := ContextDigest(chatCtx)

	for _, provider := range r.providers {
		reply, err := r.callProvider(ctx, provider, message, digest, limits)
		if err != nil {
			if llm.IsQuota(err) {
				log.Printf("%s chat quota exhausted, trying next tier", provider.Name())
			} else {
				log.Printf("%s chat call failed: %v", provider.Name(), err)
			}
			continue
		}
		if reply != "" {
			return &Reply{Response: reply, Provider: provider.Name()}
		}
	}

	return ruleBasedReply(message, chatCtx)
}

// callProvider shapes the prompt per backend: OpenAI-style providers get a
// system message plus the raw user message, Gemini gets a single combined
// prompt. Both share the same context digest.
func (r *Responder) callProvider(ctx context.Context, provider llm.Provider, message, digest string, limits llm.Limits) (string, error) {
	if provider.Name() == llm.ProviderGemini {
		prompt := prompts.Format(prompts.MustGet("chat.json", "gemini-chat"), map[string]string{
			"Context": digest,
			"Message": message,
		})
		return provider.GenerateText(ctx, "", prompt, limits)
	}

	system := prompts.MustGet("chat.json", "system")
	if digest != "" {
		system += "\n\n" + digest
	}
	return provider.GenerateText(ctx, system, message, limits)
}
