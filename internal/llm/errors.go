package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/googleapis/gax-go/v2/apierror"
)

// UpstreamError represents a failure reported by (or while reaching) the completion service
type UpstreamError struct {
	Op      string
	Auth    bool
	Timeout bool
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("upstream %s failed", e.Op)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// CompletionErrorKind distinguishes why a completion could not be used
type CompletionErrorKind string

const (
	// KindNoJSON means no '{' or no '}' was present in the completion
	KindNoJSON CompletionErrorKind = "no_json"
	// KindInvalidJSON means the brace-delimited span did not parse
	KindInvalidJSON CompletionErrorKind = "invalid_json"
	// KindSchemaInvalid means the JSON parsed but did not match the expected shape
	KindSchemaInvalid CompletionErrorKind = "schema_invalid"
)

// MalformedCompletionError represents a completion that could not be turned into the expected shape.
// Completion holds the raw text for logging; it is never shown to callers.
type MalformedCompletionError struct {
	Kind       CompletionErrorKind
	Message    string
	Completion string
	Cause      error
}

func (e *MalformedCompletionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed completion (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed completion (%s): %s", e.Kind, e.Message)
}

func (e *MalformedCompletionError) Unwrap() error {
	return e.Cause
}

// classifyUpstream wraps a provider error, flagging credential and deadline failures
func classifyUpstream(op string, err error) error {
	upstream := &UpstreamError{Op: op, Cause: err}

	if errors.Is(err, context.DeadlineExceeded) {
		upstream.Timeout = true
		return upstream
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPCode() {
		case 401, 403:
			upstream.Auth = true
		}
		if apiErr.Reason() == "API_KEY_INVALID" {
			upstream.Auth = true
		}
	}

	return upstream
}
