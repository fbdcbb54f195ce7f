// Package assessment asks the completion service for a strict recruiter judgment
// of a portfolio against the role's ATS keywords.
package assessment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/portfolio-evaluator/internal/llm"
	"github.com/jonathan/portfolio-evaluator/internal/schemas"
	"github.com/jonathan/portfolio-evaluator/internal/types"
)

var validate = validator.New()

// Error wraps a failed fit assessment
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fit assessment failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("fit assessment failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// rawAssessment mirrors the completion payload before normalization
type rawAssessment struct {
	StrongMatches  []string `json:"strong_matches"`
	PartialMatches []string `json:"partial_matches"`
	MissingSkills  []string `json:"missing_skills"`
	FitScore       float64  `json:"jd_fit_score"`
	Decision       string   `json:"hiring_decision"`
	Reason         string   `json:"decision_reason"`
}

// AssessFit makes exactly one completion call and returns a validated FitAssessment.
// portfolioText is expected to be already collapsed and truncated.
func AssessFit(ctx context.Context, client llm.Client, portfolioText string, keywords []string) (*types.FitAssessment, error) {
	if client == nil {
		return nil, &Error{Message: "completion client is required"}
	}

	prompt := BuildFitPrompt(portfolioText, keywords)

	responseText, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &Error{Message: "completion call failed", Cause: err}
	}

	var raw rawAssessment
	if err := llm.DecodeStructured(responseText, schemas.FitAssessment, &raw); err != nil {
		return nil, &Error{Message: "failed to parse assessment", Cause: err}
	}

	assessment, err := normalize(raw)
	if err != nil {
		return nil, &Error{Message: "invalid assessment", Cause: err}
	}
	return assessment, nil
}

// BuildFitPrompt constructs the strict recruiter prompt
func BuildFitPrompt(portfolioText string, keywords []string) string {
	keywordList := "(none extracted)"
	if len(keywords) > 0 {
		keywordList = strings.Join(keywords, ", ")
	}

	return llm.BuildExtractionPrompt(llm.FitAssessmentSchema(),
		llm.PromptInput{Label: "ATS keywords", Text: keywordList},
		llm.PromptInput{Label: "Portfolio text", Text: portfolioText},
	)
}

// ParseDecision matches a decision case-insensitively, ignoring surrounding whitespace
func ParseDecision(s string) (types.HiringDecision, bool) {
	trimmed := strings.TrimSpace(s)
	for _, decision := range types.HiringDecisions() {
		if strings.EqualFold(trimmed, string(decision)) {
			return decision, true
		}
	}
	return "", false
}

func normalize(raw rawAssessment) (*types.FitAssessment, error) {
	decision, ok := ParseDecision(raw.Decision)
	if !ok {
		return nil, &llm.MalformedCompletionError{
			Kind:    llm.KindSchemaInvalid,
			Message: fmt.Sprintf("hiring_decision %q is not one of Shortlist, Hold, Reject", raw.Decision),
		}
	}

	assessment := &types.FitAssessment{
		StrongMatches:  orEmpty(raw.StrongMatches),
		PartialMatches: orEmpty(raw.PartialMatches),
		MissingSkills:  orEmpty(raw.MissingSkills),
		FitScore:       int(math.Round(raw.FitScore)),
		Decision:       decision,
		Reason:         strings.TrimSpace(raw.Reason),
	}

	if err := validate.Struct(assessment); err != nil {
		return nil, &llm.MalformedCompletionError{
			Kind:    llm.KindSchemaInvalid,
			Message: "assessment failed validation",
			Cause:   err,
		}
	}
	return assessment, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
