package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/llm"
)

// fakeProvider scripts one response per call and records call order in a
// shared log.
type fakeProvider struct {
	name     string
	response string
	err      error
	calls    *[]string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) GenerateJSON(_ context.Context, _ string, _ llm.Limits) (string, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, f.name)
	}
	return f.response, f.err
}

func (f *fakeProvider) GenerateText(_ context.Context, _, _ string, _ llm.Limits) (string, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, f.name)
	}
	return f.response, f.err
}

func (f *fakeProvider) Close() error { return nil }

const testResume = "Experience\nSoftware Engineer at Acme\nSkills\nPython, Go"
const testJob = "Looking for Python Go Kubernetes experience"

func TestAnalyze_NoProviders(t *testing.T) {
	a := NewWithProviders()

	result := a.Analyze(context.Background(), testResume, testJob)

	require.NotNil(t, result.Parsed)
	assert.Equal(t, llm.ProviderNone, result.Provider)
	assert.True(t, result.Mock)
	assert.Empty(t, result.Error)
	assert.Equal(t, 70, result.Parsed.ATSScore)
}

func TestAnalyze_PrimaryWins(t *testing.T) {
	var calls []string
	primary := &fakeProvider{name: "openai", response: `{"ats_score": 88, "summary": "Strong match."}`, calls: &calls}
	secondary := &fakeProvider{name: "gemini", response: `{"ats_score": 11}`, calls: &calls}

	a := NewWithProviders(primary, secondary)
	result := a.Analyze(context.Background(), testResume, testJob)

	assert.Equal(t, []string{"openai"}, calls)
	assert.Equal(t, "openai", result.Provider)
	assert.False(t, result.Mock)
	assert.Equal(t, 88, result.Parsed.ATSScore)
	assert.Equal(t, "Strong match.", result.Parsed.Summary)
}

func TestAnalyze_FallsThroughOnQuota(t *testing.T) {
	var calls []string
	primary := &fakeProvider{
		name:  "openai",
		err:   &llm.QuotaError{Provider: "openai", Message: "insufficient_quota"},
		calls: &calls,
	}
	secondary := &fakeProvider{name: "gemini", response: `{"ats_score": 64}`, calls: &calls}

	a := NewWithProviders(primary, secondary)
	result := a.Analyze(context.Background(), testResume, testJob)

	assert.Equal(t, []string{"openai", "gemini"}, calls)
	assert.Equal(t, "gemini", result.Provider)
	assert.False(t, result.Mock)
	assert.Equal(t, 64, result.Parsed.ATSScore)
}

func TestAnalyze_FallsThroughOnTransportError(t *testing.T) {
	primary := &fakeProvider{
		name: "openai",
		err:  &llm.TransportError{Provider: "openai", Message: "connection refused"},
	}
	secondary := &fakeProvider{name: "gemini", response: `{"ats_score": 60}`}

	a := NewWithProviders(primary, secondary)
	result := a.Analyze(context.Background(), testResume, testJob)

	assert.Equal(t, "gemini", result.Provider)
	assert.Equal(t, 60, result.Parsed.ATSScore)
}

func TestAnalyze_FallsThroughOnUnusableOutput(t *testing.T) {
	primary := &fakeProvider{name: "openai", response: "I cannot answer that."}
	secondary := &fakeProvider{name: "gemini", response: `{"ats_score": 42}`}

	a := NewWithProviders(primary, secondary)
	result := a.Analyze(context.Background(), testResume, testJob)

	assert.Equal(t, "gemini", result.Provider)
	assert.Equal(t, 42, result.Parsed.ATSScore)
}

func TestAnalyze_SalvagesWrappedJSON(t *testing.T) {
	provider := &fakeProvider{
		name:     "openai",
		response: `Sure! Here is the JSON: {"ats_score": 90} Hope that helps!`,
	}

	a := NewWithProviders(provider)
	result := a.Analyze(context.Background(), testResume, testJob)

	assert.Equal(t, "openai", result.Provider)
	assert.False(t, result.Mock)
	assert.Equal(t, 90, result.Parsed.ATSScore)
}

func TestAnalyze_AllProvidersFail(t *testing.T) {
	primary := &fakeProvider{name: "openai", err: &llm.QuotaError{Provider: "openai", Message: "429"}}
	secondary := &fakeProvider{name: "gemini", err: &llm.TransportError{Provider: "gemini", Message: "down"}}

	a := NewWithProviders(primary, secondary)
	result := a.Analyze(context.Background(), testResume, testJob)

	assert.Equal(t, llm.ProviderHeuristic, result.Provider)
	assert.True(t, result.Mock)
	assert.Equal(t, "LLM providers unavailable or quota exceeded", result.Error)
	// The report is still the complete heuristic baseline.
	assert.Equal(t, 70, result.Parsed.ATSScore)
	assert.Equal(t, 8, result.Parsed.WordCount)
}

func TestAnalyze_PartialMergeKeepsBaseline(t *testing.T) {
	provider := &fakeProvider{name: "openai", response: `{"ats_score": 77}`}

	a := NewWithProviders(provider)
	baseline := a.BuildHeuristicInsights(testResume, testJob)
	result := a.Analyze(context.Background(), testResume, testJob)

	assert.Equal(t, 77, result.Parsed.ATSScore)
	assert.False(t, result.Parsed.Mock)
	// Everything the provider omitted comes from the baseline.
	assert.Equal(t, baseline.ReadabilityScore, result.Parsed.ReadabilityScore)
	assert.Equal(t, baseline.SectionCompleteness, result.Parsed.SectionCompleteness)
	assert.Equal(t, baseline.KeywordSummary, result.Parsed.KeywordSummary)
	assert.Equal(t, baseline.WordCount, result.Parsed.WordCount)
}

func TestAnalyze_RawPreserved(t *testing.T) {
	raw := "```json\n{\"ats_score\": 55}\n```"
	provider := &fakeProvider{name: "gemini", response: raw}

	a := NewWithProviders(provider)
	result := a.Analyze(context.Background(), testResume, testJob)

	assert.Equal(t, raw, result.Raw)
	assert.Equal(t, 55, result.Parsed.ATSScore)
}
