package heuristics

import (
	"math"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// minKeywordLength filters short/common job-description tokens as noise.
	minKeywordLength = 4
	// keywordDisplayCap bounds the matched/missing lists returned for display.
	keywordDisplayCap = 25
)

// KeywordCoverage classifies each qualifying job-description token as
// matched or missing against the resume's token set.
//
// Job-description tokens are deduplicated in first-seen order and filtered
// to length >= minKeywordLength. Coverage is the rounded percentage of
// matched tokens over all qualifying tokens, computed before the display
// cap is applied; an empty or all-short job description yields zero.
func KeywordCoverage(text, jobDescription string) types.KeywordSummary {
	seen := make(map[string]struct{})
	jdTokens := make([]string, 0)
	for _, tok := range Tokenize(jobDescription) {
		if len(tok) < minKeywordLength {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		jdTokens = append(jdTokens, tok)
	}

	resumeTokens := TokenSet(text)

	matched := make([]string, 0)
	missing := make([]string, 0)
	for _, tok := range jdTokens {
		if _, ok := resumeTokens[tok]; ok {
			matched = append(matched, tok)
		} else {
			missing = append(missing, tok)
		}
	}

	coverage := 0
	if len(jdTokens) > 0 {
		coverage = int(math.Round(100 * float64(len(matched)) / float64(len(jdTokens))))
	}

	return types.KeywordSummary{
		Matched:  capList(matched, keywordDisplayCap),
		Missing:  capList(missing, keywordDisplayCap),
		Coverage: coverage,
	}
}

func capList(list []string, max int) []string {
	if len(list) > max {
		return list[:max]
	}
	return list
}
