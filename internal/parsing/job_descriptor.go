// Package parsing extracts a JobDescriptor (job title and ATS keywords) from job description text.
package parsing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-evaluator/internal/ingestion"
	"github.com/jonathan/portfolio-evaluator/internal/llm"
	"github.com/jonathan/portfolio-evaluator/internal/schemas"
	"github.com/jonathan/portfolio-evaluator/internal/types"
)

// ErrNoClient is returned when extraction is attempted without a completion client
var ErrNoClient = errors.New("completion client is required")

// ExtractJobDescriptor asks the completion service for the job title and ATS keywords.
// It makes exactly one completion call. An empty description is still sent.
// Failures carry an *llm.UpstreamError or an *llm.MalformedCompletionError.
func ExtractJobDescriptor(ctx context.Context, client llm.Client, jobDescription string) (*types.JobDescriptor, error) {
	if client == nil {
		return nil, ErrNoClient
	}

	prompt := BuildJobDescriptorPrompt(jobDescription)

	responseText, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate job descriptor: %w", err)
	}

	var descriptor types.JobDescriptor
	if err := llm.DecodeStructured(responseText, schemas.JobDescriptor, &descriptor); err != nil {
		return nil, fmt.Errorf("failed to parse job descriptor: %w", err)
	}

	postProcessDescriptor(&descriptor)
	return &descriptor, nil
}

// BuildJobDescriptorPrompt constructs the extraction prompt for a job description
func BuildJobDescriptorPrompt(jobDescription string) string {
	return llm.BuildExtractionPrompt(llm.JobDescriptorSchema(), llm.PromptInput{
		Label: "Job description",
		Text:  ingestion.CleanText(jobDescription),
	})
}

// postProcessDescriptor trims the title and normalizes keywords; a null list becomes empty
func postProcessDescriptor(descriptor *types.JobDescriptor) {
	descriptor.JobTitle = strings.TrimSpace(descriptor.JobTitle)
	descriptor.ATSKeywords = NormalizeKeywords(descriptor.ATSKeywords)
}
