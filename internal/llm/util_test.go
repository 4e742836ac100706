package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "bare fence with language line",
			input:    "```js\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "bare fence without language",
			input:    "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "no fence passes through",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n```json\n{}\n```  ",
			expected: "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "object embedded in prose",
			input:    `Sure! Here is the JSON: {"ats_score": 90} Hope that helps!`,
			expected: `{"ats_score": 90}`,
			ok:       true,
		},
		{
			name:     "nested objects",
			input:    `prefix {"a": {"b": 2}} suffix`,
			expected: `{"a": {"b": 2}}`,
			ok:       true,
		},
		{
			name:     "braces inside strings ignored",
			input:    `{"text": "curly } brace", "n": 1}`,
			expected: `{"text": "curly } brace", "n": 1}`,
			ok:       true,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"text": "quote \" and } brace"}`,
			expected: `{"text": "quote \" and } brace"}`,
			ok:       true,
		},
		{
			name:  "no object",
			input: "no json here",
			ok:    false,
		},
		{
			name:  "unbalanced object",
			input: `{"a": 1`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
