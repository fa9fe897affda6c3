package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	ghhttp "github.com/bkyoung/pr-digest/internal/adapter/github/http"
)

// MapHTTPError maps GitHub API HTTP status codes to typed ghhttp.Error.
// This allows reuse of the shared retry logic and error handling.
func MapHTTPError(endpoint string, statusCode int, body []byte) *ghhttp.Error {
	message := parseErrorMessage(statusCode, body)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ghhttp.Error{
			Type:       ghhttp.ErrTypeAuthentication,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			Endpoint:   endpoint,
		}

	case http.StatusTooManyRequests:
		return &ghhttp.Error{
			Type:       ghhttp.ErrTypeRateLimit,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  true,
			Endpoint:   endpoint,
		}

	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return &ghhttp.Error{
			Type:       ghhttp.ErrTypeInvalidRequest,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			Endpoint:   endpoint,
		}

	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return &ghhttp.Error{
			Type:       ghhttp.ErrTypeServiceUnavailable,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  true,
			Endpoint:   endpoint,
		}

	default:
		return &ghhttp.Error{
			Type:       ghhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			Endpoint:   endpoint,
		}
	}
}

// parseErrorMessage extracts a user-friendly error message from GitHub's response.
func parseErrorMessage(statusCode int, body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		// Include body preview for debugging non-JSON responses
		bodyPreview := string(body)
		if len(bodyPreview) > 100 {
			bodyPreview = bodyPreview[:100] + "..."
		}
		if bodyPreview == "" {
			return fmt.Sprintf("HTTP %d", statusCode)
		}
		return fmt.Sprintf("HTTP %d: %s", statusCode, bodyPreview)
	}

	if errResp.Message == "" {
		return fmt.Sprintf("HTTP %d", statusCode)
	}

	// If there are validation errors, append them
	if len(errResp.Errors) > 0 {
		var details []string
		for _, e := range errResp.Errors {
			if e.Message != "" {
				details = append(details, e.Message)
			} else if e.Field != "" {
				details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Code))
			}
		}
		if len(details) > 0 {
			return fmt.Sprintf("%s: %s", errResp.Message, strings.Join(details, "; "))
		}
	}

	return errResp.Message
}
