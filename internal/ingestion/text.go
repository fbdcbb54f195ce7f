// Package ingestion prepares raw text (rendered portfolio pages and job descriptions) for analysis.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTextLength bounds the portfolio text handed to matching and assessment.
const DefaultMaxTextLength = 6000

var (
	inlineSpace    = regexp.MustCompile(`[ \t]+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
)

// CollapseWhitespace joins all whitespace-separated fields with a single space.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate cuts text to at most limit Unicode code points without splitting a rune.
// A non-positive limit returns the text unchanged.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}

// PreparePortfolioText collapses whitespace and truncates to maxLength code points.
func PreparePortfolioText(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxTextLength
	}
	return Truncate(CollapseWhitespace(text), maxLength)
}

// CleanText cleans a job description while preserving its line structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// CRLF and lone CR become LF
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = excessiveBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and squeezes inner runs of spaces and tabs
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	return inlineSpace.ReplaceAllString(trimmed, " ")
}

// ReadJobDescription reads a job description file and returns its cleaned text
func ReadJobDescription(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}
