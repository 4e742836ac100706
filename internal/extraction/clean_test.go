package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normalizes CRLF and CR line endings",
			input:    "one\r\ntwo\rthree",
			expected: "one\ntwo\nthree",
		},
		{
			name:     "collapses intra-line whitespace",
			input:    "a   b\t\tc",
			expected: "a b c",
		},
		{
			name:     "collapses blank-line runs to one",
			input:    "one\n\n\n\ntwo",
			expected: "one\n\ntwo",
		},
		{
			name:     "replaces non-breaking spaces",
			input:    "hello\u00a0world",
			expected: "hello world",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "\n\n  centered  \n\n",
			expected: "centered",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_PreservesLineStructure(t *testing.T) {
	input := "Experience\nSoftware   Engineer\n\n\nSkills\nGo,  Python"
	expected := "Experience\nSoftware Engineer\n\nSkills\nGo, Python"

	assert.Equal(t, expected, CleanText(input))
}
