package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	ghhttp "github.com/bkyoung/pr-digest/internal/adapter/github/http"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second

	// maxResponseSize limits how much data we'll read from a response body.
	// This prevents memory exhaustion from malicious or misconfigured servers.
	maxResponseSize = 10 * 1024 * 1024 // 10 MB
)

// pathSegmentRegex validates that owner/repo names only contain safe characters.
// GitHub allows alphanumeric, hyphens, underscores, and dots (but not leading dots).
var pathSegmentRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// pathTraversalPattern detects path traversal attempts.
var pathTraversalPattern = regexp.MustCompile(`\.\.`)

// Client talks to the GitHub API: the GraphQL endpoint for fetching a PR's
// comment threads, and the REST endpoint for posting the finished digest
// back as an issue comment.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	retryConf  ghhttp.RetryConfig
	logger     ghhttp.Logger
}

// NewClient creates a GitHub API client authenticated with the given token.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		retryConf: ghhttp.DefaultRetryConfig(),
	}
}

// SetBaseURL sets a custom base URL (for testing or GitHub Enterprise).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
}

// SetRetryConfig overrides the default retry behavior.
func (c *Client) SetRetryConfig(conf ghhttp.RetryConfig) {
	c.retryConf = conf
}

// SetLogger enables structured request logging.
func (c *Client) SetLogger(logger ghhttp.Logger) {
	c.logger = logger
}

// FetchPullRequestComments runs the comments query against the GraphQL
// endpoint and returns the raw response body. The body is returned verbatim,
// GraphQL-level errors included, because classification belongs to Decode:
// the digest must degrade to a diagnostic string, not fail the pipeline.
func (c *Client) FetchPullRequestComments(ctx context.Context, owner, repo string, pullNumber int) (string, error) {
	if err := validatePathSegment(owner, "owner"); err != nil {
		return "", err
	}
	if err := validatePathSegment(repo, "repo"); err != nil {
		return "", err
	}

	payload, err := BuildCommentsRequest(owner, repo, pullNumber)
	if err != nil {
		return "", err
	}

	body, err := c.do(ctx, "POST", c.baseURL+"/graphql", "graphql", payload)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// issueCommentRequest is the REST request body for creating an issue comment.
type issueCommentRequest struct {
	Body string `json:"body"`
}

// PostDigestComment posts the digest text as a comment on the pull request.
// PR comments use the issues comment endpoint.
func (c *Client) PostDigestComment(ctx context.Context, owner, repo string, pullNumber int, digest string) error {
	if err := validatePathSegment(owner, "owner"); err != nil {
		return err
	}
	if err := validatePathSegment(repo, "repo"); err != nil {
		return err
	}
	if pullNumber <= 0 {
		return fmt.Errorf("pull number must be positive, got %d", pullNumber)
	}

	payload, err := json.Marshal(issueCommentRequest{Body: digest})
	if err != nil {
		return fmt.Errorf("marshal comment body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), pullNumber)
	_, err = c.do(ctx, "POST", endpoint, "issue-comment", payload)
	return err
}

// do executes a single API call with retry, logging, and error mapping.
func (c *Client) do(ctx context.Context, method, endpoint, endpointName string, payload []byte) ([]byte, error) {
	var responseBody []byte

	err := ghhttp.RetryWithBackoff(ctx, func(ctx context.Context) error {
		start := time.Now()
		if c.logger != nil {
			c.logger.LogRequest(ctx, ghhttp.RequestLog{
				Endpoint:  endpointName,
				Method:    method,
				Timestamp: start,
				BodyBytes: len(payload),
				Token:     c.token,
			})
		}

		req, reqErr := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if reqErr != nil {
			return &ghhttp.Error{
				Type:      ghhttp.ErrTypeUnknown,
				Message:   reqErr.Error(),
				Retryable: false,
				Endpoint:  endpointName,
			}
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

		resp, callErr := c.httpClient.Do(req)
		if callErr != nil {
			httpErr := &ghhttp.Error{
				Type:      ghhttp.ErrTypeTimeout,
				Message:   callErr.Error(),
				Retryable: true,
				Endpoint:  endpointName,
			}
			c.logError(ctx, endpointName, start, httpErr)
			return httpErr
		}
		defer resp.Body.Close()

		bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if readErr != nil {
			return &ghhttp.Error{
				Type:       ghhttp.ErrTypeUnknown,
				Message:    fmt.Sprintf("failed to read response: %v", readErr),
				StatusCode: resp.StatusCode,
				Retryable:  resp.StatusCode >= 500,
				Endpoint:   endpointName,
			}
		}

		if resp.StatusCode >= 400 {
			httpErr := MapHTTPError(endpointName, resp.StatusCode, bodyBytes)
			c.logError(ctx, endpointName, start, httpErr)
			return httpErr
		}

		if c.logger != nil {
			c.logger.LogResponse(ctx, ghhttp.ResponseLog{
				Endpoint:   endpointName,
				Timestamp:  time.Now(),
				Duration:   time.Since(start),
				StatusCode: resp.StatusCode,
				BodyBytes:  len(bodyBytes),
			})
		}

		responseBody = bodyBytes
		return nil
	}, c.retryConf)

	if err != nil {
		return nil, err
	}
	return responseBody, nil
}

func (c *Client) logError(ctx context.Context, endpointName string, start time.Time, err *ghhttp.Error) {
	if c.logger == nil {
		return
	}
	c.logger.LogError(ctx, ghhttp.ErrorLog{
		Endpoint:   endpointName,
		Timestamp:  time.Now(),
		Duration:   time.Since(start),
		Error:      err,
		ErrorType:  err.Type,
		StatusCode: err.StatusCode,
		Retryable:  err.Retryable,
	})
}

// validatePathSegment ensures owner/repo values are safe to embed in URLs.
func validatePathSegment(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	if pathTraversalPattern.MatchString(value) {
		return fmt.Errorf("%s contains path traversal sequence: %q", name, value)
	}
	if !pathSegmentRegex.MatchString(value) {
		return fmt.Errorf("%s contains invalid characters: %q", name, value)
	}
	return nil
}
