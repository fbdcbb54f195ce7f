package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func model(name string, methods ...string) *genai.ModelInfo {
	return &genai.ModelInfo{Name: name, SupportedGenerationMethods: methods}
}

func TestFilterTextModels(t *testing.T) {
	models := []*genai.ModelInfo{
		model("models/gemini-1.5-flash", "generateContent", "countTokens"),
		model("models/text-embedding-004", "embedContent"),
		model("models/gemini-2.0-flash-exp-image-generation", "generateContent"),
		model("models/gemini-2.5-flash-preview-tts", "generateContent"),
		model("models/gemini-pro-vision", "generateContent"),
		model("models/gemini-robotics-er", "generateContent"),
		model("models/veo-2.0-generate-001", "generateContent"),
		model("models/imagen-3.0-generate-002", "predict"),
		model("models/gemini-2.5-native-audio-dialog", "generateContent"),
		model("models/aqa", "generateAnswer"),
		model("models/gemini-2.5-pro", "generateContent"),
		nil,
	}

	assert.Equal(t, []string{"models/gemini-1.5-flash", "models/gemini-2.5-pro"}, FilterTextModels(models))
}

func TestFilterTextModels_Empty(t *testing.T) {
	names := FilterTextModels(nil)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestListTextModels_RequiresKey(t *testing.T) {
	_, err := ListTextModels(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}
