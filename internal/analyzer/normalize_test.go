package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/heuristics"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestParseProviderPayload(t *testing.T) {
	payload, err := parseProviderPayload(`{"ats_score": 82.4, "strengths": ["Clear metrics"]}`)
	require.NoError(t, err)
	require.NotNil(t, payload.ATSScore)
	assert.Equal(t, 82.4, *payload.ATSScore)
	assert.Equal(t, []string{"Clear metrics"}, payload.Strengths)
}

func TestParseProviderPayload_Fenced(t *testing.T) {
	payload, err := parseProviderPayload("```json\n{\"ats_score\": 70}\n```")
	require.NoError(t, err)
	require.NotNil(t, payload.ATSScore)
	assert.Equal(t, 70.0, *payload.ATSScore)
}

func TestParseProviderPayload_SalvageFromProse(t *testing.T) {
	payload, err := parseProviderPayload(`Of course. {"skills_match_score": 45, "summary": "Decent."} Let me know!`)
	require.NoError(t, err)
	require.NotNil(t, payload.SkillsMatchScore)
	assert.Equal(t, 45.0, *payload.SkillsMatchScore)
}

func TestParseProviderPayload_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "I'm sorry, I cannot help with that."},
		{"truncated object", `{"ats_score": 9`},
		{"wrong field type", `{"ats_score": "very high"}`},
		{"array instead of object", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := parseProviderPayload(tt.raw)
			assert.Error(t, err)
			assert.Nil(t, payload)
		})
	}
}

func TestMergeWithBaseline(t *testing.T) {
	baseline := heuristics.BuildInsights(testResume, testJob)

	payload, err := parseProviderPayload(`{
		"ats_score": 150,
		"readability_score": -10,
		"skills_match_score": 81,
		"keyword_summary": {"matched": ["python"], "coverage": 62},
		"extracted": {"skills": ["Python", "Go", "Kubernetes"]},
		"strengths": ["Quantified impact"],
		"summary": "Good fit overall.",
		"wordCount": 310.6
	}`)
	require.NoError(t, err)

	merged := mergeWithBaseline(payload, baseline)

	// Scores round and clamp.
	assert.Equal(t, 100, merged.ATSScore)
	assert.Equal(t, 0, merged.ReadabilityScore)
	assert.Equal(t, 81, merged.SkillsMatchScore)
	assert.Equal(t, 311, merged.WordCount)
	assert.False(t, merged.Mock)

	// Keyword summary merges key by key: missing stays from the baseline.
	assert.Equal(t, []string{"python"}, merged.KeywordSummary.Matched)
	assert.Equal(t, baseline.KeywordSummary.Missing, merged.KeywordSummary.Missing)
	assert.Equal(t, 62, merged.KeywordSummary.Coverage)

	assert.Equal(t, []string{"Python", "Go", "Kubernetes"}, merged.Extracted.Skills)
	assert.Equal(t, baseline.Extracted.Experience, merged.Extracted.Experience)
	assert.Equal(t, []string{"Quantified impact"}, merged.Strengths)
	assert.Equal(t, baseline.Weaknesses, merged.Weaknesses)
	assert.Equal(t, "Good fit overall.", merged.Summary)

	// The merge never mutates the baseline.
	assert.True(t, baseline.Mock)
	assert.NotEqual(t, 100, baseline.ATSScore)
}

func TestMergeWithBaseline_EmptyPayloadKeepsEverything(t *testing.T) {
	baseline := heuristics.BuildInsights(testResume, testJob)

	payload, err := parseProviderPayload(`{}`)
	require.NoError(t, err)

	merged := mergeWithBaseline(payload, baseline)

	expected := baseline.Clone()
	expected.Mock = false
	assert.Equal(t, expected, merged)
}

func TestMergeWithBaseline_EmptyListsKeepBaseline(t *testing.T) {
	baseline := heuristics.BuildInsights(testResume, testJob)

	payload, err := parseProviderPayload(`{"strengths": [], "weaknesses": [], "summary": "   "}`)
	require.NoError(t, err)

	merged := mergeWithBaseline(payload, baseline)

	assert.Equal(t, baseline.Strengths, merged.Strengths)
	assert.Equal(t, baseline.Weaknesses, merged.Weaknesses)
	assert.Equal(t, baseline.Summary, merged.Summary)
}

func TestMergeWithBaseline_StructuredEntities(t *testing.T) {
	baseline := heuristics.BuildInsights(testResume, testJob)

	payload, err := parseProviderPayload(`{
		"extracted": {
			"experience": [{"role": "Engineer", "company": "Acme", "duration": "2020-2024", "summary": "Built APIs"}],
			"education": [{"institution": "State University", "degree": "BSc", "year": "2019"}]
		}
	}`)
	require.NoError(t, err)

	merged := mergeWithBaseline(payload, baseline)

	require.Len(t, merged.Extracted.Experience, 1)
	assert.Equal(t, types.ExperienceEntry{
		Role: "Engineer", Company: "Acme", Duration: "2020-2024", Summary: "Built APIs",
	}, merged.Extracted.Experience[0])
	require.Len(t, merged.Extracted.Education, 1)
	assert.Equal(t, "State University", merged.Extracted.Education[0].Institution)
	// Projects were not supplied, so the baseline list survives.
	assert.Equal(t, baseline.Extracted.Projects, merged.Extracted.Projects)
}
