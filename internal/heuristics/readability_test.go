package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateSyllables(t *testing.T) {
	tests := []struct {
		word     string
		expected int
	}{
		{"cat", 1},
		{"hello", 2},
		{"code", 1},
		{"apple", 1},
		{"engineering", 4},
		{"rhythm", 1},
		{"bcd", 1},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, estimateSyllables(tt.word))
		})
	}
}

func TestReadabilityScore_SimpleTextClampsHigh(t *testing.T) {
	// Short monosyllabic sentences push the raw formula above 100.
	assert.Equal(t, 100, ReadabilityScore("The cat sat. The dog ran."))
}

func TestReadabilityScore_EmptyText(t *testing.T) {
	// All denominators floor at 1, so empty input still scores.
	assert.Equal(t, 100, ReadabilityScore(""))
}

func TestReadabilityScore_DenseTextScoresLower(t *testing.T) {
	simple := ReadabilityScore("We built the app. It runs fast.")
	dense := ReadabilityScore("Responsibilities encompassed architecting heterogeneous microservice infrastructure utilizing containerization orchestration methodologies alongside observability instrumentation")

	assert.Less(t, dense, simple)
	assert.GreaterOrEqual(t, dense, 0)
	assert.LessOrEqual(t, simple, 100)
}
