package analyzer

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// providerPayload mirrors the analysis report shape with every field
// optional, so a partial provider reply decodes cleanly. Scores decode as
// floats because models emit either integers or decimals.
type providerPayload struct {
	ATSScore            *float64           `json:"ats_score"`
	ReadabilityScore    *float64           `json:"readability_score"`
	SectionCompleteness *float64           `json:"section_completeness"`
	SkillsMatchScore    *float64           `json:"skills_match_score"`
	KeywordSummary      *keywordPayload    `json:"keyword_summary"`
	Extracted           *extractedPayload  `json:"extracted"`
	Strengths           []string           `json:"strengths"`
	Weaknesses          []string           `json:"weaknesses"`
	Recommendations     []string           `json:"recommendations"`
	Summary             *string            `json:"summary"`
	WordCount           *float64           `json:"wordCount"`
}

type keywordPayload struct {
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
	Coverage *float64 `json:"coverage"`
}

type extractedPayload struct {
	Skills     []string                `json:"skills"`
	Experience []types.ExperienceEntry `json:"experience"`
	Education  []types.EducationEntry  `json:"education"`
	Projects   []types.ProjectEntry    `json:"projects"`
}

// parseProviderPayload turns raw provider text into a payload using the
// two-stage strategy: strict parse first, then a balanced-object scan for
// JSON buried in conversational wrapping. Both stages validate the
// candidate document against the analysis schema so well-formed JSON with
// the wrong shape is rejected the same way as malformed text.
func parseProviderPayload(raw string) (*providerPayload, error) {
	cleaned := llm.CleanJSONBlock(raw)

	payload, err := decodePayload(cleaned)
	if err == nil {
		return payload, nil
	}

	if span, ok := llm.ExtractJSONObject(cleaned); ok {
		if payload, spanErr := decodePayload(span); spanErr == nil {
			return payload, nil
		}
	}

	return nil, err
}

func decodePayload(doc string) (*providerPayload, error) {
	if err := schemas.ValidateAnalysisJSON(doc); err != nil {
		return nil, err
	}
	var payload providerPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// mergeWithBaseline merges a provider payload onto the heuristic baseline
// field by field: present, non-empty provider fields win, everything else
// keeps the baseline value. The merge operates on a clone and never mutates
// either input. Mock is false because reaching the merge means a provider
// produced usable output.
func mergeWithBaseline(payload *providerPayload, baseline *types.Insights) *types.Insights {
	merged := baseline.Clone()
	merged.Mock = false

	merged.ATSScore = mergeScore(payload.ATSScore, merged.ATSScore)
	merged.ReadabilityScore = mergeScore(payload.ReadabilityScore, merged.ReadabilityScore)
	merged.SectionCompleteness = mergeScore(payload.SectionCompleteness, merged.SectionCompleteness)
	merged.SkillsMatchScore = mergeScore(payload.SkillsMatchScore, merged.SkillsMatchScore)

	if payload.KeywordSummary != nil {
		merged.KeywordSummary.Matched = mergeList(payload.KeywordSummary.Matched, merged.KeywordSummary.Matched)
		merged.KeywordSummary.Missing = mergeList(payload.KeywordSummary.Missing, merged.KeywordSummary.Missing)
		merged.KeywordSummary.Coverage = mergeScore(payload.KeywordSummary.Coverage, merged.KeywordSummary.Coverage)
	}

	if payload.Extracted != nil {
		merged.Extracted.Skills = mergeList(payload.Extracted.Skills, merged.Extracted.Skills)
		if len(payload.Extracted.Experience) > 0 {
			merged.Extracted.Experience = payload.Extracted.Experience
		}
		if len(payload.Extracted.Education) > 0 {
			merged.Extracted.Education = payload.Extracted.Education
		}
		if len(payload.Extracted.Projects) > 0 {
			merged.Extracted.Projects = payload.Extracted.Projects
		}
	}

	merged.Strengths = mergeList(payload.Strengths, merged.Strengths)
	merged.Weaknesses = mergeList(payload.Weaknesses, merged.Weaknesses)
	merged.Recommendations = mergeList(payload.Recommendations, merged.Recommendations)

	if payload.Summary != nil && strings.TrimSpace(*payload.Summary) != "" {
		merged.Summary = *payload.Summary
	}
	if payload.WordCount != nil && *payload.WordCount >= 0 {
		merged.WordCount = int(math.Round(*payload.WordCount))
	}

	return merged
}

// mergeScore rounds and clamps a provider score, keeping the baseline when
// the provider omitted the field.
func mergeScore(value *float64, baseline int) int {
	if value == nil {
		return baseline
	}
	score := int(math.Round(*value))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func mergeList(value, baseline []string) []string {
	if len(value) > 0 {
		return value
	}
	return baseline
}
