package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		key      string
		contains string
	}{
		{"job-descriptor", "ATS keywords"},
		{"fit-assessment", "Shortlist"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			prompt, err := Get("analysis.json", tt.key)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("nonexistent.json", "job-descriptor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt file nonexistent.json not found")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("analysis.json", "cover-letter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `prompt key "cover-letter" not found`)
}

func TestMustGet(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet("analysis.json", "job-descriptor"))
	})
	assert.Panics(t, func() {
		MustGet("analysis.json", "cover-letter")
	})
}

func TestEmbeddedPromptsAreNonEmpty(t *testing.T) {
	files, err := load()
	require.NoError(t, err)
	require.Contains(t, files, "analysis.json")

	for name, prompts := range files {
		for key, prompt := range prompts {
			assert.NotEmpty(t, strings.TrimSpace(prompt), "%s/%s", name, key)
		}
	}
}
