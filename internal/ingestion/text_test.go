package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only whitespace", " \n\t  ", ""},
		{"mixed runs", "  Hello\n\n  world\t\tfrom   Go ", "Hello world from Go"},
		{"already clean", "a b c", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollapseWhitespace(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel", Truncate("hello", 3))
	assert.Equal(t, "hello", Truncate("hello", 0))
	assert.Equal(t, "", Truncate("", 5))

	// Multi-byte runes are never split
	assert.Equal(t, "héé", Truncate("héééé", 3))
	assert.Equal(t, "🚀🚀", Truncate("🚀🚀🚀", 2))
	assert.True(t, utf8.ValidString(Truncate("日本語テキスト", 4)))
}

func TestPreparePortfolioText_NeverExceedsLimit(t *testing.T) {
	lengths := []int{0, 1, 5999, 6000, 6001, 20000}
	for _, n := range lengths {
		raw := strings.Repeat("é ", n)
		prepared := PreparePortfolioText(raw, DefaultMaxTextLength)
		assert.LessOrEqual(t, utf8.RuneCountInString(prepared), DefaultMaxTextLength, "input length %d", n)
	}
}

func TestPreparePortfolioText_CollapsesBeforeTruncating(t *testing.T) {
	raw := "Go      developer\n\n\nwith   React"
	assert.Equal(t, "Go developer", PreparePortfolioText(raw, 12))
	assert.Equal(t, "Go developer with React", PreparePortfolioText(raw, 0))
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t multiple    spaces")
	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")

	assert.NotContains(t, result, "\n\n\n")
	assert.Contains(t, result, "\n\n")
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.NotContains(t, result, "\r")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Test with émojis 🚀 and spéciàl chàracters")

	assert.Contains(t, result, "émojis")
	assert.Contains(t, result, "🚀")
}

func TestReadJobDescription_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("Senior Go Engineer\r\n\r\n\r\n\r\nKubernetes   and gRPC"), 0644))

	text, err := ReadJobDescription(path)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer\n\nKubernetes and gRPC", text)
}

func TestReadJobDescription_FileNotFound(t *testing.T) {
	_, err := ReadJobDescription(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
