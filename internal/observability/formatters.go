// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/portfolio-evaluator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for analysis reports
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// shorten cuts s to at most n runes, marking the cut with "..."
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to maxItemsToShow bulleted items
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintStage outputs a one-line progress marker for a pipeline stage.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStage(index, total int, message string) {
	fmt.Fprintf(p.out, "[%d/%d] %s...\n", index, total, message)
}

// PrintBuild outputs the portfolio build classification.
func (p *Printer) PrintBuild(build types.BuildClassification) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Build:      %s\n", build.BuildType))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f", build.Confidence))
	if build.Heuristic {
		sb.WriteString(" (heuristic)")
	}

	p.printBox("PORTFOLIO BUILD", sb.String())
}

// PrintATSMatch outputs the keyword screen results.
func (p *Printer) PrintATSMatch(match types.ATSMatch) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:   %d/100\n", match.Score))
	sb.WriteString(fmt.Sprintf("Matched: %d\n", match.MatchedCount))
	sb.WriteString(fmt.Sprintf("Missing: %d", match.MissingCount))

	p.printBox("ATS KEYWORD MATCH", sb.String())
}

// PrintSkillEvidence outputs the recruiter's evidence breakdown.
func (p *Printer) PrintSkillEvidence(evidence types.SkillEvidence) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Strong: %d  Partial: %d  Missing: %d\n",
		evidence.StrongMatchCount, evidence.PartialMatchCount, evidence.MissingSkillCount))
	if len(evidence.PartialMatches) > 0 || len(evidence.MissingSkills) > 0 {
		sb.WriteString("\n")
	}
	writeList(&sb, "Partial matches", evidence.PartialMatches)
	writeList(&sb, "Missing skills", evidence.MissingSkills)

	p.printBox("SKILL EVIDENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerdict outputs the fit score and hiring decision.
func (p *Printer) PrintVerdict(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fit score: %d/100\n", result.FitScore))
	sb.WriteString(fmt.Sprintf("Decision:  %s %s\n", decisionMarker(result.HiringDecision), result.HiringDecision))
	if result.DecisionReason != "" {
		sb.WriteString("\n")
		for _, line := range wrap(result.DecisionReason, boxWidth-4) {
			sb.WriteString(line + "\n")
		}
	}

	p.printBox("RECRUITER VERDICT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the complete report.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	title := result.JobTitle
	if title == "" {
		title = "(untitled role)"
	}
	fmt.Fprintf(p.out, "%s\n%s vs %s\n\n", result.EvaluationMode, result.PortfolioURL, title)

	p.PrintBuild(result.PortfolioBuild)
	p.PrintATSMatch(result.ATSMatch)
	p.PrintSkillEvidence(result.SkillEvidence)
	p.PrintVerdict(result)
}

func decisionMarker(decision types.HiringDecision) string {
	switch decision {
	case types.DecisionShortlist:
		return "✅"
	case types.DecisionHold:
		return "⏸"
	default:
		return "❌"
	}
}

// wrap splits text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
