package parsing

import "strings"

// NormalizeKeywords trims keywords, drops blank entries and removes
// case-insensitive duplicates, keeping the first spelling and original order.
// The result is never nil.
func NormalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))

	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}

		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, trimmed)
	}

	return normalized
}
