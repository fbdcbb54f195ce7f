//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestAnalysisRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		request  AnalysisRequest
		wantErr  bool
		errField string
		errMsg   string
	}{
		{
			name: "valid request",
			request: AnalysisRequest{
				PortfolioURL:   "https://jane.dev",
				JobDescription: strPtr("Go engineer"),
				Model:          "models/gemini-1.5-flash",
				APIKey:         "key",
			},
		},
		{
			name: "empty job description is present",
			request: AnalysisRequest{
				PortfolioURL:   "https://jane.dev",
				JobDescription: strPtr(""),
				Model:          "gemini-1.5-flash",
				APIKey:         "key",
			},
		},
		{
			name: "missing portfolio url",
			request: AnalysisRequest{
				JobDescription: strPtr("Go engineer"),
				Model:          "gemini-1.5-flash",
				APIKey:         "key",
			},
			wantErr: true,
			errMsg:  MissingFieldsMessage,
		},
		{
			name: "missing job description",
			request: AnalysisRequest{
				PortfolioURL: "https://jane.dev",
				Model:        "gemini-1.5-flash",
				APIKey:       "key",
			},
			wantErr: true,
			errMsg:  MissingFieldsMessage,
		},
		{
			name: "whitespace api key",
			request: AnalysisRequest{
				PortfolioURL:   "https://jane.dev",
				JobDescription: strPtr("Go engineer"),
				Model:          "gemini-1.5-flash",
				APIKey:         "   ",
			},
			wantErr: true,
			errMsg:  MissingFieldsMessage,
		},
		{
			name: "relative url",
			request: AnalysisRequest{
				PortfolioURL:   "jane.dev/about",
				JobDescription: strPtr("Go engineer"),
				Model:          "gemini-1.5-flash",
				APIKey:         "key",
			},
			wantErr:  true,
			errField: "portfolio_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, vErr.Message)
			}
			if tt.errField != "" {
				assert.Equal(t, tt.errField, vErr.Field)
			}
		})
	}
}

func TestAnalysisRequest_JSONPresence(t *testing.T) {
	var req AnalysisRequest
	require.NoError(t, json.Unmarshal([]byte(`{"portfolio_url":"https://a.dev","job_description":"","model":"m","api_key":"k"}`), &req))
	require.NotNil(t, req.JobDescription)
	assert.Equal(t, "", req.JD())
	assert.NoError(t, req.Validate())

	var missing AnalysisRequest
	require.NoError(t, json.Unmarshal([]byte(`{"portfolio_url":"https://a.dev","model":"m","api_key":"k"}`), &missing))
	assert.Nil(t, missing.JobDescription)
	assert.Equal(t, "", missing.JD())
}

func TestModelsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ModelsRequest{APIKey: "key"}).Validate())

	err := (&ModelsRequest{}).Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "api_key", vErr.Field)
	assert.Equal(t, "API key required", vErr.Message)
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation error: Missing required fields", (&ValidationError{Message: MissingFieldsMessage}).Error())
	assert.Equal(t, "validation error in portfolio_url: bad", (&ValidationError{Field: "portfolio_url", Message: "bad"}).Error())
}

func TestHiringDecisions(t *testing.T) {
	assert.Equal(t, []HiringDecision{"Shortlist", "Hold", "Reject"}, HiringDecisions())
}
