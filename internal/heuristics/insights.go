package heuristics

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Entity caps applied when deriving extracted entities from section buckets.
const (
	maxSkills     = 25
	maxExperience = 6
	maxEducation  = 4
	maxProjects   = 4
)

// lowCoverageThreshold is the keyword coverage below which the report flags
// missing job keywords as a weakness.
const lowCoverageThreshold = 60

// BuildInsights composes the full heuristic baseline report for a resume
// and an optional job description. It is pure and total: any input,
// including empty text, produces a complete report.
//
// The ats_score floor of 50 plus 0.4 per coverage point reproduces the
// legacy formula; the constants are an unvalidated heuristic kept for
// compatibility with stored reports.
func BuildInsights(text, jobDescription string) *types.Insights {
	buckets := DetectSections(text)
	keywords := KeywordCoverage(text, jobDescription)

	atsScore := int(math.Round(50 + 0.4*float64(keywords.Coverage)))
	if atsScore > 100 {
		atsScore = 100
	}

	completeness := int(math.Round(100 * float64(buckets.Present()) / float64(len(SectionNames))))

	weaknesses := []string{}
	if keywords.Coverage < lowCoverageThreshold {
		weaknesses = append(weaknesses, "Job keywords missing")
	}

	recommendations := make([]string, 0, 3)
	for _, word := range capList(keywords.Missing, 3) {
		recommendations = append(recommendations, fmt.Sprintf("Incorporate the keyword %q where relevant.", word))
	}

	return &types.Insights{
		ATSScore:            clampScore(atsScore),
		ReadabilityScore:    ReadabilityScore(text),
		SectionCompleteness: clampScore(completeness),
		SkillsMatchScore:    clampScore(keywords.Coverage),
		KeywordSummary:      keywords,
		Extracted:           extractEntities(buckets),
		Strengths:           []string{"Includes core resume sections", "Readable structure"},
		Weaknesses:          weaknesses,
		Recommendations:     recommendations,
		Summary:             "Baseline heuristic insights (LLM disabled or fallback).",
		WordCount:           CountWords(text),
		Mock:                true,
	}
}

// extractEntities derives capped entity lists from the section buckets.
// The heuristic pass only sees raw lines, so most sub-fields stay empty;
// a provider merge fills them in when available.
func extractEntities(buckets SectionBuckets) types.ExtractedEntities {
	entities := types.ExtractedEntities{
		Skills:     extractSkills(buckets[SectionSkills]),
		Experience: []types.ExperienceEntry{},
		Education:  []types.EducationEntry{},
		Projects:   []types.ProjectEntry{},
	}

	for _, line := range capList(buckets[SectionExperience], maxExperience) {
		entities.Experience = append(entities.Experience, types.ExperienceEntry{Role: line, Summary: line})
	}
	for _, line := range capList(buckets[SectionEducation], maxEducation) {
		entities.Education = append(entities.Education, types.EducationEntry{Institution: line})
	}
	for _, line := range capList(buckets[SectionProjects], maxProjects) {
		entities.Projects = append(entities.Projects, types.ProjectEntry{Name: line, Description: line})
	}

	return entities
}

// extractSkills splits the skills bucket on common list separators and
// returns the distinct fragments in first-seen order.
func extractSkills(lines []string) []string {
	joined := strings.Join(lines, " ")
	fragments := strings.FieldsFunc(joined, func(r rune) bool {
		return r == ',' || r == '•' || r == '-'
	})

	seen := make(map[string]struct{})
	skills := make([]string, 0)
	for _, fragment := range fragments {
		skill := strings.TrimSpace(fragment)
		if len(skill) <= 1 {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}

	return capList(skills, maxSkills)
}
