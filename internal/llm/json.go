package llm

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/portfolio-evaluator/internal/schemas"
)

// ExtractJSONObject returns the span from the first '{' to the last '}' of a
// completion, provided it parses as JSON. Surrounding prose and markdown fences are ignored.
func ExtractJSONObject(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 {
		return nil, &MalformedCompletionError{
			Kind:    KindNoJSON,
			Message: "completion did not contain a JSON object",
		}
	}
	if end < start {
		return nil, &MalformedCompletionError{
			Kind:    KindInvalidJSON,
			Message: "closing brace precedes opening brace",
		}
	}

	candidate := text[start : end+1]
	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, &MalformedCompletionError{
			Kind:    KindInvalidJSON,
			Message: "completion JSON could not be parsed",
			Cause:   err,
		}
	}

	return json.RawMessage(candidate), nil
}

// DecodeStructured extracts the JSON object from a completion, validates it
// against the named embedded schema and unmarshals it into out.
// A *MalformedCompletionError it returns carries the raw completion text.
func DecodeStructured(text, schemaName string, out any) error {
	err := decodeStructured(text, schemaName, out)
	var malformed *MalformedCompletionError
	if errors.As(err, &malformed) {
		malformed.Completion = text
	}
	return err
}

func decodeStructured(text, schemaName string, out any) error {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return err
	}

	if err := schemas.Validate(schemaName, string(raw)); err != nil {
		var vErr *schemas.ValidationError
		if errors.As(err, &vErr) {
			return &MalformedCompletionError{
				Kind:    KindSchemaInvalid,
				Message: vErr.Summary(),
				Cause:   err,
			}
		}
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &MalformedCompletionError{
			Kind:    KindSchemaInvalid,
			Message: "completion JSON did not match the expected shape",
			Cause:   err,
		}
	}
	return nil
}
