// Package matching measures how many ATS keywords literally appear in a portfolio.
package matching

import (
	"strings"

	"github.com/jonathan/portfolio-evaluator/internal/types"
)

// MatchKeywords partitions keywords by case-insensitive substring presence in text
// and scores coverage as floor(100 * matched / max(len(keywords), 1)).
// Matched and Missing keep the keyword order and are never nil.
func MatchKeywords(keywords []string, text string) types.KeywordMatch {
	textLower := strings.ToLower(text)

	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		// Simple substring matching, no word boundaries
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	return types.KeywordMatch{
		Matched: matched,
		Missing: missing,
		Score:   Score(len(matched), len(keywords)),
	}
}

// Score returns the integer coverage percentage, 0 when there are no keywords.
func Score(matched, total int) int {
	return 100 * matched / max(total, 1)
}
