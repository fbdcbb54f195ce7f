// Package llm - extractor.go builds prompts that ask for a single JSON object.
package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-evaluator/internal/prompts"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobDescriptor")
	Description string        // System prompt preamble describing the task
	Fields      []SchemaField // Expected output fields
	Rules       []string      // Task-specific rules appended after the output contract
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// PromptInput is a labelled block of input text
type PromptInput struct {
	Label string
	Text  string
}

// BuildExtractionPrompt constructs the LLM prompt from schema and labelled inputs.
func BuildExtractionPrompt(schema ExtractionSchema, inputs ...PromptInput) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	for _, rule := range schema.Rules {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	for _, input := range inputs {
		sb.WriteString(input.Label)
		sb.WriteString(":\n\"\"\"\n")
		sb.WriteString(input.Text)
		sb.WriteString("\n\"\"\"\n")
	}

	return sb.String()
}

// --- Predefined Schemas ---

// JobDescriptorSchema returns the extraction schema for job descriptions.
func JobDescriptorSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "JobDescriptor",
		Description: prompts.MustGet("analysis.json", "job-descriptor"),
		Fields: []SchemaField{
			{
				Name:        "job_title",
				Type:        "\"string\"",
				Description: "Job title as written in the posting",
			},
			{
				Name:        "ats_keywords",
				Type:        "[\"string\"]",
				Description: "Skills, tools, frameworks and technologies an ATS would screen for",
			},
		},
		Rules: []string{
			"Extract information directly from the text, do not invent keywords.",
			"Use short keyword phrases (1-3 words) as they appear in the posting.",
		},
	}
}

// FitAssessmentSchema returns the schema for the strict recruiter fit judgment.
func FitAssessmentSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "FitAssessment",
		Description: prompts.MustGet("analysis.json", "fit-assessment"),
		Fields: []SchemaField{
			{
				Name:        "strong_matches",
				Type:        "[\"string\"]",
				Description: "Keywords with clear, concrete evidence in the portfolio",
			},
			{
				Name:        "partial_matches",
				Type:        "[\"string\"]",
				Description: "Keywords with weak or indirect evidence",
			},
			{
				Name:        "missing_skills",
				Type:        "[\"string\"]",
				Description: "Keywords with no evidence at all",
			},
			{
				Name:     "jd_fit_score",
				Type:     "integer 0-100",
				Required: true,
			},
			{
				Name:     "hiring_decision",
				Type:     "\"Shortlist\" | \"Hold\" | \"Reject\"",
				Required: true,
			},
			{
				Name:        "decision_reason",
				Type:        "\"string\"",
				Description: "One or two sentences justifying the decision",
			},
		},
		Rules: []string{
			"Only count a keyword as a strong match when the portfolio text demonstrates it.",
			"Every ATS keyword must appear in exactly one of strong_matches, partial_matches or missing_skills.",
		},
	}
}
