// Package heuristics implements the deterministic resume analysis baseline:
// tokenization, section detection, readability, keyword coverage, and the
// composed insight report used as the fallback and merge template for LLM
// provider output.
package heuristics

import "strings"

// Tokenize normalizes text into lowercase alphanumeric word tokens.
// Every character outside [a-z0-9] is treated as a separator. Empty input
// yields an empty (non-nil) slice.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	tokens := strings.Fields(b.String())
	if tokens == nil {
		tokens = []string{}
	}
	return tokens
}

// CountWords returns the number of word tokens in text.
func CountWords(text string) int {
	return len(Tokenize(text))
}

// TokenSet returns the set of distinct tokens in text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// clampScore bounds a score to the [0,100] range used by every report field.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
