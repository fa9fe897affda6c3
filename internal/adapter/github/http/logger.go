package http

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Logger provides structured logging for GitHub API calls.
type Logger interface {
	// LogRequest logs an outgoing API request (token redacted)
	LogRequest(ctx context.Context, req RequestLog)

	// LogResponse logs an API response with timing info
	LogResponse(ctx context.Context, resp ResponseLog)

	// LogError logs an API error
	LogError(ctx context.Context, err ErrorLog)
}

// RequestLog contains request information for logging.
type RequestLog struct {
	Endpoint  string
	Method    string
	Timestamp time.Time
	BodyBytes int
	Token     string // Will be redacted to last 4 chars
}

// ResponseLog contains response information for logging.
type ResponseLog struct {
	Endpoint   string
	Timestamp  time.Time
	Duration   time.Duration
	StatusCode int
	BodyBytes  int
}

// ErrorLog contains error information for logging.
type ErrorLog struct {
	Endpoint   string
	Timestamp  time.Time
	Duration   time.Duration
	Error      error
	ErrorType  ErrorType
	StatusCode int
	Retryable  bool
}

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelError
)

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// DefaultLogger writes logs in structured format to stderr via the standard
// log package.
type DefaultLogger struct {
	level       LogLevel
	redactToken bool
	format      LogFormat
}

// NewDefaultLogger creates a logger with the specified config.
func NewDefaultLogger(level LogLevel, format LogFormat, redactToken bool) *DefaultLogger {
	return &DefaultLogger{
		level:       level,
		redactToken: redactToken,
		format:      format,
	}
}

// LogRequest logs an API request.
func (l *DefaultLogger) LogRequest(ctx context.Context, req RequestLog) {
	if l.level > LogLevelDebug {
		return
	}

	redacted := l.RedactToken(req.Token)

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"debug","type":"request","endpoint":"%s","method":"%s","timestamp":"%s","body_bytes":%d,"token":"%s"}`,
			req.Endpoint, req.Method, req.Timestamp.Format(time.RFC3339),
			req.BodyBytes, redacted)
	} else {
		log.Printf("[DEBUG] %s %s: request sent (body=%d bytes, token=%s)",
			req.Method, req.Endpoint, req.BodyBytes, redacted)
	}
}

// LogResponse logs an API response.
func (l *DefaultLogger) LogResponse(ctx context.Context, resp ResponseLog) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"info","type":"response","endpoint":"%s","timestamp":"%s","duration_ms":%d,"status_code":%d,"body_bytes":%d}`,
			resp.Endpoint, resp.Timestamp.Format(time.RFC3339),
			resp.Duration.Milliseconds(), resp.StatusCode, resp.BodyBytes)
	} else {
		log.Printf("[INFO] %s: response received (duration=%.1fs, status=%d, body=%d bytes)",
			resp.Endpoint, resp.Duration.Seconds(), resp.StatusCode, resp.BodyBytes)
	}
}

// LogError logs an API error.
func (l *DefaultLogger) LogError(ctx context.Context, err ErrorLog) {
	if l.level > LogLevelError {
		return
	}

	retryableStr := "non-retryable"
	if err.Retryable {
		retryableStr = "retryable"
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"error","type":"error","endpoint":"%s","timestamp":"%s","duration_ms":%d,"error":"%s","error_type":%d,"status_code":%d,"retryable":%t}`,
			err.Endpoint, err.Timestamp.Format(time.RFC3339),
			err.Duration.Milliseconds(), err.Error.Error(), err.ErrorType,
			err.StatusCode, err.Retryable)
	} else {
		log.Printf("[ERROR] %s: API call failed (status=%d, %s): %v",
			err.Endpoint, err.StatusCode, retryableStr, err.Error)
	}
}

// RedactToken shows only the last 4 characters of a token with explicit
// redaction markers.
func (l *DefaultLogger) RedactToken(token string) string {
	if !l.redactToken {
		return token
	}
	if len(token) <= 4 {
		return "[REDACTED]"
	}
	return fmt.Sprintf("[REDACTED-%s]", token[len(token)-4:])
}
