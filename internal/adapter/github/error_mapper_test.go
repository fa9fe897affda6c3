package github_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/pr-digest/internal/adapter/github"
	ghhttp "github.com/bkyoung/pr-digest/internal/adapter/github/http"
)

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		wantType      ghhttp.ErrorType
		wantRetryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, ghhttp.ErrTypeAuthentication, false},
		{"forbidden", http.StatusForbidden, ghhttp.ErrTypeAuthentication, false},
		{"rate limited", http.StatusTooManyRequests, ghhttp.ErrTypeRateLimit, true},
		{"not found", http.StatusNotFound, ghhttp.ErrTypeInvalidRequest, false},
		{"unprocessable", http.StatusUnprocessableEntity, ghhttp.ErrTypeInvalidRequest, false},
		{"server error", http.StatusInternalServerError, ghhttp.ErrTypeServiceUnavailable, true},
		{"bad gateway", http.StatusBadGateway, ghhttp.ErrTypeServiceUnavailable, true},
		{"unavailable", http.StatusServiceUnavailable, ghhttp.ErrTypeServiceUnavailable, true},
		{"teapot", http.StatusTeapot, ghhttp.ErrTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := github.MapHTTPError("graphql", tt.statusCode, []byte(`{"message":"nope"}`))

			require.NotNil(t, err)
			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, tt.wantRetryable, err.Retryable)
			assert.Equal(t, tt.statusCode, err.StatusCode)
			assert.Equal(t, "graphql", err.Endpoint)
			assert.Contains(t, err.Message, "nope")
		})
	}
}

func TestMapHTTPError_NonJSONBody(t *testing.T) {
	err := github.MapHTTPError("graphql", http.StatusBadGateway, []byte("<html>bad gateway</html>"))

	assert.Contains(t, err.Message, "HTTP 502")
	assert.Contains(t, err.Message, "<html>bad gateway</html>")
}

func TestMapHTTPError_EmptyBody(t *testing.T) {
	err := github.MapHTTPError("issue-comment", http.StatusNotFound, nil)

	assert.Equal(t, "HTTP 404", err.Message)
}

func TestMapHTTPError_ValidationErrors(t *testing.T) {
	body := []byte(`{"message":"Validation Failed","errors":[{"resource":"IssueComment","field":"body","code":"missing_field"}]}`)

	err := github.MapHTTPError("issue-comment", http.StatusUnprocessableEntity, body)

	assert.Contains(t, err.Message, "Validation Failed")
	assert.Contains(t, err.Message, "body: missing_field")
}
