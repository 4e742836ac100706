package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviders_NoCredentials(t *testing.T) {
	providers, err := NewProviders(context.Background(), Credentials{}, nil)
	require.NoError(t, err)
	assert.Empty(t, providers)
}

func TestNewProviders_OpenAIOnly(t *testing.T) {
	providers, err := NewProviders(context.Background(), Credentials{OpenAIKey: "sk-test"}, nil)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, ProviderOpenAI, providers[0].Name())
}

func TestNewProviders_OpenAIBeforeGemini(t *testing.T) {
	providers, err := NewProviders(context.Background(),
		Credentials{OpenAIKey: "sk-test", GeminiKey: "gm-test"}, nil)
	require.NoError(t, err)
	defer CloseAll(providers)

	require.Len(t, providers, 2)
	assert.Equal(t, ProviderOpenAI, providers[0].Name())
	assert.Equal(t, ProviderGemini, providers[1].Name())

	gemini, ok := providers[1].(*GeminiProvider)
	require.True(t, ok)
	assert.Equal(t, DefaultConfig().Timeout, gemini.timeout)
}

func TestCredentialsConfigured(t *testing.T) {
	assert.False(t, Credentials{}.Configured())
	assert.True(t, Credentials{OpenAIKey: "a"}.Configured())
	assert.True(t, Credentials{GeminiKey: "b"}.Configured())
}

func TestGeminiCallContextBoundsDeadline(t *testing.T) {
	p := &GeminiProvider{timeout: 5 * time.Second}

	ctx, cancel := p.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestGeminiCallContextDefaultsWhenUnset(t *testing.T) {
	p := &GeminiProvider{}

	ctx, cancel := p.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultConfig().Timeout), deadline, time.Second)
}

func TestGeminiCallContextKeepsEarlierDeadline(t *testing.T) {
	parent, parentCancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer parentCancel()

	p := &GeminiProvider{timeout: time.Hour}
	ctx, cancel := p.callContext(parent)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Millisecond), deadline, time.Second)
}

func TestGeminiWrapError(t *testing.T) {
	p := &GeminiProvider{}

	assert.True(t, IsQuota(p.wrapError(errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED"))))
	assert.True(t, IsQuota(p.wrapError(errors.New("quota exceeded for model"))))
	assert.False(t, IsQuota(p.wrapError(errors.New("connection refused"))))
}
