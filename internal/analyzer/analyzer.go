// Package analyzer runs the resume analysis provider chain: it always
// computes the heuristic baseline, tries LLM providers in fixed priority
// order, and merges whatever structured output a provider returns onto the
// baseline so callers always receive a complete report.
package analyzer

import (
	"context"
	"log"

	"github.com/jonathan/resume-analyzer/internal/heuristics"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Prompt input truncation bounds latency and cost per provider call.
const (
	maxResumeChars         = 8000
	maxJobDescriptionChars = 4000
)

// Generation limits for the structured analysis call.
const (
	analysisMaxTokens   = 900
	analysisTemperature = 0.2
)

// Result is the outcome of a full analysis: the merged report plus
// provenance. Parsed is always non-nil; Mock is true if and only if no
// provider produced usable output, in which case Error carries a short
// explanation for display.
type Result struct {
	Raw      string          `json:"raw,omitempty"`
	Parsed   *types.Insights `json:"parsed"`
	Provider string          `json:"provider"`
	Mock     bool            `json:"mock"`
	Error    string          `json:"error,omitempty"`
}

// Analyzer holds the provider fallback chain. It is stateless across
// requests; every Analyze call builds its report from scratch.
type Analyzer struct {
	providers []llm.Provider
}

// New builds an analyzer from explicit credentials. Providers without a
// configured credential are skipped entirely, not counted as failures.
func New(ctx context.Context, creds llm.Credentials, config *llm.Config) (*Analyzer, error) {
	providers, err := llm.NewProviders(ctx, creds, config)
	if err != nil {
		return nil, err
	}
	return NewWithProviders(providers...), nil
}

// NewWithProviders builds an analyzer over an explicit provider chain.
// Order is significant: providers are tried first to last.
func NewWithProviders(providers ...llm.Provider) *Analyzer {
	return &Analyzer{providers: providers}
}

// Close releases provider resources.
func (a *Analyzer) Close() {
	llm.CloseAll(a.providers)
}

// BuildHeuristicInsights exposes the deterministic baseline directly.
func (a *Analyzer) BuildHeuristicInsights(text, jobDescription string) *types.Insights {
	return heuristics.BuildInsights(text, jobDescription)
}

// Analyze produces the merged analysis report. It never fails: every
// provider error degrades to the next tier, and exhausting all tiers
// resolves to the heuristic baseline with Mock set.
func (a *Analyzer) Analyze(ctx context.Context, text, jobDescription string) *Result {
	baseline := heuristics.BuildInsights(text, jobDescription)

	if len(a.providers) == 0 {
		return &Result{Parsed: baseline, Provider: llm.ProviderNone, Mock: true}
	}

	prompt := buildAnalysisPrompt(text, jobDescription)
	limits := llm.Limits{MaxTokens: analysisMaxTokens, Temperature: analysisTemperature}

	for _, provider := range a.providers {
		raw, err := provider.GenerateJSON(ctx, prompt, limits)
		if err != nil {
			if llm.IsQuota(err) {
				log.Printf("%s quota exhausted, trying next tier", provider.Name())
			} else {
				log.Printf("%s analysis call failed: %v", provider.Name(), err)
			}
			continue
		}

		payload, err := parseProviderPayload(raw)
		if err != nil {
			log.Printf("%s returned unusable analysis output: %v", provider.Name(), err)
			continue
		}

		return &Result{
			Raw:      raw,
			Parsed:   mergeWithBaseline(payload, baseline),
			Provider: provider.Name(),
			Mock:     false,
		}
	}

	return &Result{
		Parsed:   baseline,
		Provider: llm.ProviderHeuristic,
		Mock:     true,
		Error:    "LLM providers unavailable or quota exceeded",
	}
}

// buildAnalysisPrompt fills the strict-JSON analysis template with the
// truncated resume and job description.
func buildAnalysisPrompt(text, jobDescription string) string {
	template := prompts.MustGet("analysis.json", "analyze-resume")
	return prompts.Format(template, map[string]string{
		"Resume":         prompts.Truncate(text, maxResumeChars),
		"JobDescription": prompts.Truncate(jobDescription, maxJobDescriptionChars),
	})
}
