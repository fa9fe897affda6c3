package http_test

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ghhttp "github.com/bkyoung/pr-digest/internal/adapter/github/http"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	fn()
	return buf.String()
}

func TestDefaultLogger_RedactToken(t *testing.T) {
	logger := ghhttp.NewDefaultLogger(ghhttp.LogLevelDebug, ghhttp.LogFormatHuman, true)

	assert.Equal(t, "[REDACTED-6789]", logger.RedactToken("ghp_123456789"))
	assert.Equal(t, "[REDACTED]", logger.RedactToken("abc"))

	plain := ghhttp.NewDefaultLogger(ghhttp.LogLevelDebug, ghhttp.LogFormatHuman, false)
	assert.Equal(t, "ghp_123456789", plain.RedactToken("ghp_123456789"))
}

func TestDefaultLogger_RequestRedactsToken(t *testing.T) {
	logger := ghhttp.NewDefaultLogger(ghhttp.LogLevelDebug, ghhttp.LogFormatHuman, true)

	out := captureLog(t, func() {
		logger.LogRequest(context.Background(), ghhttp.RequestLog{
			Endpoint:  "graphql",
			Method:    "POST",
			Timestamp: time.Now(),
			BodyBytes: 120,
			Token:     "ghp_secret_token_9999",
		})
	})

	assert.Contains(t, out, "graphql")
	assert.NotContains(t, out, "ghp_secret_token_9999")
	assert.Contains(t, out, "9999", "last 4 chars remain for correlation")
}

func TestDefaultLogger_LevelFiltersRequests(t *testing.T) {
	logger := ghhttp.NewDefaultLogger(ghhttp.LogLevelInfo, ghhttp.LogFormatHuman, true)

	out := captureLog(t, func() {
		logger.LogRequest(context.Background(), ghhttp.RequestLog{Endpoint: "graphql"})
	})

	assert.Empty(t, out, "debug-level request logs suppressed at info level")
}

func TestDefaultLogger_JSONFormat(t *testing.T) {
	logger := ghhttp.NewDefaultLogger(ghhttp.LogLevelInfo, ghhttp.LogFormatJSON, true)

	out := captureLog(t, func() {
		logger.LogResponse(context.Background(), ghhttp.ResponseLog{
			Endpoint:   "graphql",
			Timestamp:  time.Now(),
			Duration:   1200 * time.Millisecond,
			StatusCode: 200,
			BodyBytes:  2048,
		})
	})

	assert.Contains(t, out, `"type":"response"`)
	assert.Contains(t, out, `"status_code":200`)
	assert.Contains(t, out, `"duration_ms":1200`)
}

func TestDefaultLogger_ErrorIncludesRetryability(t *testing.T) {
	logger := ghhttp.NewDefaultLogger(ghhttp.LogLevelError, ghhttp.LogFormatHuman, true)

	out := captureLog(t, func() {
		logger.LogError(context.Background(), ghhttp.ErrorLog{
			Endpoint:   "issue-comment",
			Timestamp:  time.Now(),
			Error:      &ghhttp.Error{Type: ghhttp.ErrTypeRateLimit, Message: "slow down", StatusCode: 429, Retryable: true, Endpoint: "issue-comment"},
			ErrorType:  ghhttp.ErrTypeRateLimit,
			StatusCode: 429,
			Retryable:  true,
		})
	})

	if !strings.Contains(out, "retryable") {
		t.Errorf("expected retryability in log output, got %q", out)
	}
	assert.Contains(t, out, "429")
}
