package heuristics

import "strings"

// Section names recognized by the classifier.
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionProjects   = "projects"
	SectionSkills     = "skills"
)

// SectionNames lists all recognized sections in canonical order.
var SectionNames = []string{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionSkills,
}

// SectionBuckets maps a section name to the trimmed, non-empty source lines
// assigned to it.
type SectionBuckets map[string][]string

// Present returns how many sections have at least one line.
func (b SectionBuckets) Present() int {
	count := 0
	for _, name := range SectionNames {
		if len(b[name]) > 0 {
			count++
		}
	}
	return count
}

// DetectSections partitions resume text into named section buckets.
//
// Lines are streamed top to bottom with a single current-section cursor that
// starts at summary. A line containing a trigger keyword moves the cursor
// before the line is bucketed, so a heading line lands in the section it
// introduces. Trigger priority is fixed: experience, education, project,
// skill/technolog, summary/profile/objective.
func DetectSections(text string) SectionBuckets {
	buckets := SectionBuckets{
		SectionSummary:    {},
		SectionExperience: {},
		SectionEducation:  {},
		SectionProjects:   {},
		SectionSkills:     {},
	}

	current := SectionSummary
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		normalized := strings.ToLower(trimmed)

		switch {
		case strings.Contains(normalized, "experience"):
			current = SectionExperience
		case strings.Contains(normalized, "education"):
			current = SectionEducation
		case strings.Contains(normalized, "project"):
			current = SectionProjects
		case strings.Contains(normalized, "skill"), strings.Contains(normalized, "technolog"):
			current = SectionSkills
		case strings.Contains(normalized, "summary"),
			strings.Contains(normalized, "profile"),
			strings.Contains(normalized, "objective"):
			current = SectionSummary
		}

		if trimmed != "" {
			buckets[current] = append(buckets[current], trimmed)
		}
	}

	return buckets
}
