package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSections(t *testing.T) {
	text := "Jane Doe\n" +
		"Summary\n" +
		"Seasoned backend developer.\n" +
		"Experience\n" +
		"Software Engineer at Acme\n" +
		"Education\n" +
		"State University\n" +
		"Projects\n" +
		"Log pipeline\n" +
		"Skills\n" +
		"Go, Python"

	buckets := DetectSections(text)

	assert.Equal(t, []string{"Jane Doe", "Summary", "Seasoned backend developer."}, buckets[SectionSummary])
	assert.Equal(t, []string{"Experience", "Software Engineer at Acme"}, buckets[SectionExperience])
	assert.Equal(t, []string{"Education", "State University"}, buckets[SectionEducation])
	assert.Equal(t, []string{"Projects", "Log pipeline"}, buckets[SectionProjects])
	assert.Equal(t, []string{"Skills", "Go, Python"}, buckets[SectionSkills])
	assert.Equal(t, 5, buckets.Present())
}

func TestDetectSections_HeadingLandsInNewSection(t *testing.T) {
	buckets := DetectSections("Work Experience\nBuilt things")

	assert.Empty(t, buckets[SectionSummary])
	assert.Equal(t, []string{"Work Experience", "Built things"}, buckets[SectionExperience])
}

func TestDetectSections_TechnologiesTriggersSkills(t *testing.T) {
	buckets := DetectSections("Technologies\nDocker")

	assert.Equal(t, []string{"Technologies", "Docker"}, buckets[SectionSkills])
}

func TestDetectSections_DefaultsToSummary(t *testing.T) {
	buckets := DetectSections("Just a line with no heading")

	assert.Equal(t, []string{"Just a line with no heading"}, buckets[SectionSummary])
	assert.Equal(t, 1, buckets.Present())
}

func TestDetectSections_Empty(t *testing.T) {
	buckets := DetectSections("")

	assert.Equal(t, 0, buckets.Present())
	for _, name := range SectionNames {
		assert.Empty(t, buckets[name])
	}
}

func TestDetectSections_BlankLinesSkipped(t *testing.T) {
	buckets := DetectSections("Experience\n\n   \nDid work")

	assert.Equal(t, []string{"Experience", "Did work"}, buckets[SectionExperience])
}
