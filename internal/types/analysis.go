// Package types defines the shared data structures exchanged between the
// heuristic engine, the LLM orchestrator, and the service layer.
package types

// KeywordSummary reports job-description keyword coverage for a resume.
// Matched and Missing preserve token order and are capped for display;
// Coverage is computed from the uncapped counts.
type KeywordSummary struct {
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
	Coverage int      `json:"coverage"`
}

// ExperienceEntry is one work-history item extracted from the resume.
type ExperienceEntry struct {
	Role     string `json:"role"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
	Summary  string `json:"summary"`
}

// EducationEntry is one education item extracted from the resume.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// ProjectEntry is one project item extracted from the resume.
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// ExtractedEntities groups the structured items pulled out of a resume.
type ExtractedEntities struct {
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Projects   []ProjectEntry    `json:"projects"`
}

// Insights is the canonical analysis report shape. The heuristic engine
// always produces a complete Insights value; provider output is merged onto
// it field by field, so every consumer can rely on every field being set.
//
// All score fields are clamped to [0,100]. Mock is true only when no LLM
// provider contributed to the report.
type Insights struct {
	ATSScore            int               `json:"ats_score"`
	ReadabilityScore    int               `json:"readability_score"`
	SectionCompleteness int               `json:"section_completeness"`
	SkillsMatchScore    int               `json:"skills_match_score"`
	KeywordSummary      KeywordSummary    `json:"keyword_summary"`
	Extracted           ExtractedEntities `json:"extracted"`
	Strengths           []string          `json:"strengths"`
	Weaknesses          []string          `json:"weaknesses"`
	Recommendations     []string          `json:"recommendations"`
	Summary             string            `json:"summary"`
	WordCount           int               `json:"wordCount"`
	Mock                bool              `json:"mock"`
}

// Clone returns a deep copy of the insights. Normalization merges provider
// output onto a copy so the heuristic baseline is never mutated.
func (in *Insights) Clone() *Insights {
	out := *in
	out.KeywordSummary.Matched = append([]string(nil), in.KeywordSummary.Matched...)
	out.KeywordSummary.Missing = append([]string(nil), in.KeywordSummary.Missing...)
	out.Extracted.Skills = append([]string(nil), in.Extracted.Skills...)
	out.Extracted.Experience = append([]ExperienceEntry(nil), in.Extracted.Experience...)
	out.Extracted.Education = append([]EducationEntry(nil), in.Extracted.Education...)
	out.Extracted.Projects = append([]ProjectEntry(nil), in.Extracted.Projects...)
	out.Strengths = append([]string(nil), in.Strengths...)
	out.Weaknesses = append([]string(nil), in.Weaknesses...)
	out.Recommendations = append([]string(nil), in.Recommendations...)
	return &out
}
