package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MissingFieldsMessage is the client-facing message for absent required fields.
const MissingFieldsMessage = "Missing required fields"

// AnalysisRequest represents the request body for an analysis.
// JobDescription is a pointer so an empty description counts as present.
type AnalysisRequest struct {
	PortfolioURL   string  `json:"portfolio_url" validate:"required,http_url"`
	JobDescription *string `json:"job_description" validate:"required"`
	Model          string  `json:"model" validate:"required"`
	APIKey         string  `json:"api_key" validate:"required"`
}

// ModelsRequest represents the request body for listing models.
type ModelsRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// ValidationError indicates a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// JD returns the job description text, or "" when absent.
func (r *AnalysisRequest) JD() string {
	if r.JobDescription == nil {
		return ""
	}
	return *r.JobDescription
}

// Validate trims identifiers and checks the request using the validator.
// Any absent field yields MissingFieldsMessage; a present but malformed URL is reported by field.
func (r *AnalysisRequest) Validate() error {
	r.PortfolioURL = strings.TrimSpace(r.PortfolioURL)
	r.Model = strings.TrimSpace(r.Model)
	r.APIKey = strings.TrimSpace(r.APIKey)

	validate := validator.New()
	return toValidationError(validate.Struct(r))
}

// Validate checks the models request using the validator.
func (r *ModelsRequest) Validate() error {
	r.APIKey = strings.TrimSpace(r.APIKey)

	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return &ValidationError{Field: "api_key", Message: "API key required"}
	}
	return nil
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: err.Error()}
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &ValidationError{Message: MissingFieldsMessage}
		}
	}

	fe := fieldErrs[0]
	if fe.Field() == "PortfolioURL" {
		return &ValidationError{Field: "portfolio_url", Message: "portfolio_url must be an absolute http or https URL"}
	}
	return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag())}
}
