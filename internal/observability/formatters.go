// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the analyze and chat commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScores outputs the four report scores with keyword coverage.
func (p *Printer) PrintScores(insights *types.Insights) {
	if insights == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score:             %3d\n", insights.ATSScore))
	sb.WriteString(fmt.Sprintf("Readability:           %3d\n", insights.ReadabilityScore))
	sb.WriteString(fmt.Sprintf("Section Completeness:  %3d\n", insights.SectionCompleteness))
	sb.WriteString(fmt.Sprintf("Skills Match:          %3d\n", insights.SkillsMatchScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Keyword coverage: %d%% (%d matched, %d missing)",
		insights.KeywordSummary.Coverage,
		len(insights.KeywordSummary.Matched),
		len(insights.KeywordSummary.Missing)))

	p.printBox("SCORES", sb.String())
}

// PrintFindings outputs strengths, weaknesses, and recommendations.
func (p *Printer) PrintFindings(insights *types.Insights) {
	if insights == nil {
		return
	}

	var sb strings.Builder
	writeItemList(&sb, "Strengths:", insights.Strengths)
	writeItemList(&sb, "Weaknesses:", insights.Weaknesses)
	writeItemList(&sb, "Recommendations:", insights.Recommendations)

	if insights.Summary != "" {
		sb.WriteString("Summary:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", insights.Summary))
	}

	p.printBox("FINDINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtracted outputs the structured entities pulled from the resume.
func (p *Printer) PrintExtracted(insights *types.Insights) {
	if insights == nil {
		return
	}
	extracted := insights.Extracted

	var sb strings.Builder
	if len(extracted.Skills) > 0 {
		skills := strings.Join(extracted.Skills, ", ")
		if len(skills) > 160 {
			skills = skills[:157] + "..."
		}
		sb.WriteString("Skills:\n")
		for _, line := range wrapText(skills, boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		sb.WriteString("\n")
	}

	if len(extracted.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(extracted.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := extracted.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", entry.Role))
			if entry.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", entry.Company))
			}
			sb.WriteString("\n")
		}
		if len(extracted.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(extracted.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(extracted.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, entry := range extracted.Education {
			sb.WriteString(fmt.Sprintf("  • %s", entry.Institution))
			if entry.Degree != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", entry.Degree))
			}
			sb.WriteString("\n")
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("No entities extracted")
	}

	p.printBox("EXTRACTED", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProvenance outputs which tier produced the report.
func (p *Printer) PrintProvenance(result *analyzer.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provider:  %s\n", result.Provider))
	sb.WriteString(fmt.Sprintf("Fallback:  %t", result.Mock))
	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("\nNote:      %s", result.Error))
	}

	p.printBox("PROVENANCE", sb.String())
}

// PrintResult outputs the full report: scores, findings, entities, and
// provenance.
func (p *Printer) PrintResult(result *analyzer.Result) {
	if result == nil {
		return
	}
	p.PrintScores(result.Parsed)
	p.PrintFindings(result.Parsed)
	p.PrintExtracted(result.Parsed)
	p.PrintProvenance(result)
}

func writeItemList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title)
	sb.WriteString("\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := items[i]
		if len(item) > 50 {
			item = item[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	lines := []string{}
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
		} else if len(current)+1+len(word) <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
