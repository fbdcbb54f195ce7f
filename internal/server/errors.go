package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio-evaluator/internal/fetch"
	"github.com/jonathan/portfolio-evaluator/internal/llm"
	"github.com/jonathan/portfolio-evaluator/internal/pipeline"
	"github.com/jonathan/portfolio-evaluator/internal/types"
)

// ErrInvalidBody indicates the request body was not a JSON object
type ErrInvalidBody struct {
	Cause error
}

func (e *ErrInvalidBody) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *ErrInvalidBody) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an analysis error
func HTTPStatus(err error) int {
	var (
		validationErr *types.ValidationError
		bodyErr       *ErrInvalidBody
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &bodyErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ModelsHTTPStatus returns the status code for a model listing error.
// Upstream failures are the caller's problem here: a bad credential or an unknown project.
func ModelsHTTPStatus(err error) int {
	var upstreamErr *llm.UpstreamError
	switch {
	case HTTPStatus(err) == http.StatusBadRequest:
		return http.StatusBadRequest
	case errors.As(err, &upstreamErr) && upstreamErr.Auth:
		return http.StatusUnauthorized
	case errors.As(err, &upstreamErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage produces the message placed in an {"error": ...} body
func PublicMessage(err error) string {
	var (
		validationErr *types.ValidationError
		bodyErr       *ErrInvalidBody
		stageErr      *pipeline.StageError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &bodyErr):
		return "Invalid request body"
	case errors.As(err, &stageErr):
		return fmt.Sprintf("Analysis failed at %s: %s", stageErr.Stage, causeMessage(stageErr.Cause))
	default:
		return causeMessage(err)
	}
}

// causeMessage summarizes the domain error behind a failure
func causeMessage(err error) string {
	var (
		renderErr    *fetch.RenderError
		upstreamErr  *llm.UpstreamError
		malformedErr *llm.MalformedCompletionError
	)
	switch {
	case errors.As(err, &renderErr):
		if renderErr.Cause != nil && !renderErr.Timeout {
			return fmt.Sprintf("failed to render portfolio: %s: %v", renderErr.Message, renderErr.Cause)
		}
		return "failed to render portfolio: " + renderErr.Message
	case errors.As(err, &upstreamErr):
		if upstreamErr.Auth {
			return fmt.Sprintf("completion service rejected the credential: %v", upstreamErr.Cause)
		}
		return fmt.Sprintf("completion service error: %v", upstreamErr.Cause)
	case errors.As(err, &malformedErr):
		return fmt.Sprintf("model returned an unusable response (%s): %s", malformedErr.Kind, malformedErr.Message)
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return "internal error"
	}
}
