package chat

import (
	"fmt"
	"strings"
)

// ruleBasedReply is the terminal fallback tier: it pattern-matches the
// lowercased message against topic keywords and returns a canned,
// context-aware paragraph. An unmatched message gets the capability menu.
// This tier is deterministic and never fails.
func ruleBasedReply(message string, chatCtx *Context) *Reply {
	lower := strings.ToLower(message)

	var response string
	switch {
	case strings.Contains(lower, "ats") || strings.Contains(lower, "score"):
		response = scoreReply(chatCtx)
	case strings.Contains(lower, "improve") || strings.Contains(lower, "better"):
		response = improveReply(chatCtx)
	case strings.Contains(lower, "keyword"):
		response = keywordReply(chatCtx)
	case strings.Contains(lower, "skill"):
		response = "Skills should be: 1) Relevant to the job, 2) Specific (e.g., \"Python\" not just \"Programming\"), 3) Organized by category (Technical, Soft, Certifications). Include both hard and soft skills."
	case strings.Contains(lower, "format") || strings.Contains(lower, "layout"):
		response = "Resume formatting tips:\n- Use clear section headers\n- Consistent formatting throughout\n- 1-2 pages max\n- Use bullet points for readability\n- Save as PDF to preserve formatting\n- Avoid complex graphics that ATS can't read"
	default:
		response = "I can help you with:\n- Understanding your ATS score\n- Improving your resume\n- Keyword optimization\n- Formatting tips\n- Answering questions about job applications\n\nWhat would you like to know?"
	}

	return &Reply{Response: response, Provider: "heuristic"}
}

func scoreReply(chatCtx *Context) string {
	if chatCtx == nil || chatCtx.Analysis == nil {
		return "I can help you understand ATS scores once you upload and analyze a resume. ATS (Applicant Tracking System) scores measure how well your resume matches job requirements. Higher scores (70+) increase your chances of passing automated screening."
	}

	analysis := chatCtx.Analysis
	response := fmt.Sprintf("Your current ATS score is %d/100. ", analysis.ATSScore)
	if analysis.ATSScore < 70 {
		response += fmt.Sprintf("To improve, focus on incorporating missing keywords like: %s. Also ensure all key sections (experience, education, skills) are complete.",
			joinCapped(analysis.KeywordSummary.Missing, 3))
	} else {
		response += "Great score! Keep it up by maintaining keyword relevance and clear formatting."
	}
	return response
}

func improveReply(chatCtx *Context) string {
	if chatCtx == nil || chatCtx.Analysis == nil || len(chatCtx.Analysis.Recommendations) == 0 {
		return "To improve your resume:\n1. Match keywords from job descriptions naturally\n2. Quantify achievements with metrics (e.g., \"Increased sales by 30%\")\n3. Ensure all sections are complete (experience, education, skills, projects)\n4. Use action verbs and clear formatting"
	}

	var sb strings.Builder
	sb.WriteString("Here are key improvements for your resume:")
	for i, rec := range chatCtx.Analysis.Recommendations {
		if i >= 3 {
			break
		}
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, rec))
	}
	return sb.String()
}

func keywordReply(chatCtx *Context) string {
	if chatCtx == nil || chatCtx.Analysis == nil || len(chatCtx.Analysis.KeywordSummary.Missing) == 0 {
		return "Keywords are crucial for ATS systems. Match terms from the job description in your resume naturally. Focus on skills, technologies, and industry terms mentioned in the job posting."
	}

	return fmt.Sprintf("Missing keywords to consider: %s. Try naturally incorporating these into your resume sections where relevant. Don't stuff keywords - use them contextually.",
		joinCapped(chatCtx.Analysis.KeywordSummary.Missing, 5))
}
