package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func apiError(t *testing.T, code int) error {
	t.Helper()
	apiErr, ok := apierror.FromError(&googleapi.Error{Code: code, Message: "upstream said no"})
	require.True(t, ok)
	return apiErr
}

func TestClassifyUpstream(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantAuth    bool
		wantTimeout bool
	}{
		{"unauthorized", apiError(t, 401), true, false},
		{"forbidden", apiError(t, 403), true, false},
		{"bad request", apiError(t, 400), false, false},
		{"server error", apiError(t, 500), false, false},
		{"deadline", fmt.Errorf("rpc: %w", context.DeadlineExceeded), false, true},
		{"plain", errors.New("connection reset"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyUpstream("list models", tt.err)

			var upstream *UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, "list models", upstream.Op)
			assert.Equal(t, tt.wantAuth, upstream.Auth)
			assert.Equal(t, tt.wantTimeout, upstream.Timeout)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUpstreamError_Error(t *testing.T) {
	err := &UpstreamError{Op: "generate content", Cause: errors.New("quota exceeded")}
	assert.Equal(t, "upstream generate content failed: quota exceeded", err.Error())
	assert.Equal(t, "upstream generate content failed", (&UpstreamError{Op: "generate content"}).Error())
}

func TestMalformedCompletionError_Error(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &MalformedCompletionError{Kind: KindInvalidJSON, Message: "completion JSON could not be parsed", Cause: cause}

	assert.Equal(t, "malformed completion (invalid_json): completion JSON could not be parsed: unexpected end of JSON input", err.Error())
	assert.ErrorIs(t, err, cause)
}
