package chat

import (
	"fmt"
	"strings"
)

// maxDigestFacts caps how much of a prior analysis is folded into prompts.
const maxDigestFacts = 5

// ContextDigest compresses a prior analysis into a short bullet digest of
// at most maxDigestFacts lines. Returns "" when there is no analysis.
func ContextDigest(chatCtx *Context) string {
	if chatCtx == nil || chatCtx.Analysis == nil {
		return ""
	}
	analysis := chatCtx.Analysis

	facts := make([]string, 0, maxDigestFacts)
	facts = append(facts, fmt.Sprintf("- ATS score: %d/100", analysis.ATSScore))
	facts = append(facts, fmt.Sprintf("- Skills match: %d%%", analysis.SkillsMatchScore))

	if len(analysis.Strengths) > 0 {
		facts = append(facts, "- Strengths: "+joinCapped(analysis.Strengths, 3))
	}
	if len(analysis.Weaknesses) > 0 {
		facts = append(facts, "- Areas to improve: "+joinCapped(analysis.Weaknesses, 3))
	}
	if len(analysis.KeywordSummary.Missing) > 0 {
		facts = append(facts, "- Missing keywords: "+joinCapped(analysis.KeywordSummary.Missing, 5))
	}
	if len(facts) < maxDigestFacts {
		facts = append(facts, fmt.Sprintf("- Readability: %d/100", analysis.ReadabilityScore))
	}
	if len(facts) > maxDigestFacts {
		facts = facts[:maxDigestFacts]
	}

	return "Current resume analysis:\n" + strings.Join(facts, "\n")
}

func joinCapped(items []string, max int) string {
	if len(items) > max {
		items = items[:max]
	}
	return strings.Join(items, ", ")
}
