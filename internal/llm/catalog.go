package llm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// generateContentMethod is the generation method a model must support to be listed
const generateContentMethod = "generateContent"

// excludedModelMarkers flag non-text models by name
var excludedModelMarkers = []string{"image", "audio", "vision", "embedding", "tts", "robot", "veo", "imagen"}

// ModelLister returns the text-generation models available to a credential
type ModelLister func(ctx context.Context, apiKey string) ([]string, error)

// ListTextModels queries the provider's model catalog and keeps text-capable models
func ListTextModels(ctx context.Context, apiKey string) ([]string, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, classifyUpstream("list models", err)
	}
	defer func() { _ = client.Close() }()

	var models []*genai.ModelInfo
	it := client.ListModels(ctx)
	for {
		info, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classifyUpstream("list models", err)
		}
		models = append(models, info)
	}

	return FilterTextModels(models), nil
}

// FilterTextModels keeps models that support content generation and are not
// image, audio, embedding or other non-text variants. Catalog order is preserved.
func FilterTextModels(models []*genai.ModelInfo) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		if m == nil || !slices.Contains(m.SupportedGenerationMethods, generateContentMethod) {
			continue
		}
		if isExcludedModel(m.Name) {
			continue
		}
		names = append(names, m.Name)
	}
	return names
}

func isExcludedModel(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range excludedModelMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
