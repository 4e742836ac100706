package heuristics

import (
	"math"
	"strings"
)

// ReadabilityScore computes a Flesch-Reading-Ease variant for text,
// rounded and clamped to [0,100].
//
// Sentence count is the number of '.', '!' and '?' occurrences, word count
// is the token count, and syllables come from estimateSyllables; each
// denominator is floored at 1 so empty input still produces a score.
func ReadabilityScore(text string) int {
	sentences := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	if sentences == 0 {
		sentences = 1
	}

	tokens := Tokenize(text)
	words := len(tokens)
	if words == 0 {
		words = 1
	}

	syllables := 0
	for _, tok := range tokens {
		syllables += estimateSyllables(tok)
	}
	if syllables == 0 {
		syllables = 1
	}

	wordsPerSentence := float64(words) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(words)
	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord

	return clampScore(int(math.Round(score)))
}

// estimateSyllables approximates syllables as the number of contiguous
// vowel groups (aeiouy), minus one for a trailing 'e', floored at 1.
func estimateSyllables(word string) int {
	if word == "" {
		return 0
	}

	groups := 0
	inGroup := false
	for _, r := range word {
		if isVowel(r) {
			if !inGroup {
				groups++
				inGroup = true
			}
		} else {
			inGroup = false
		}
	}

	if groups == 0 {
		return 1
	}
	if strings.HasSuffix(word, "e") {
		groups--
	}
	if groups < 1 {
		return 1
	}
	return groups
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
