package http

import (
	"time"

	"github.com/bkyoung/pr-digest/internal/config"
)

// ParseTimeout parses the configured timeout, falling back to defaultVal.
// Negative durations are rejected (would cause runtime panic in
// http.Client.Timeout).
func ParseTimeout(configured string, defaultVal time.Duration) time.Duration {
	if configured != "" {
		if d, err := time.ParseDuration(configured); err == nil && d >= 0 {
			return d
		}
	}

	if defaultVal < 0 {
		return 30 * time.Second
	}
	return defaultVal
}

// BuildRetryConfig creates RetryConfig from the global HTTP config.
func BuildRetryConfig(httpCfg config.HTTPConfig) RetryConfig {
	defaults := DefaultRetryConfig()

	maxRetries := httpCfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaults.MaxRetries
	}

	multiplier := httpCfg.BackoffMultiplier
	if multiplier <= 0 {
		multiplier = defaults.Multiplier
	}

	return RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: parseDuration(httpCfg.InitialBackoff, defaults.InitialBackoff),
		MaxBackoff:     parseDuration(httpCfg.MaxBackoff, defaults.MaxBackoff),
		Multiplier:     multiplier,
	}
}

// parseDuration parses duration with a non-negative fallback.
func parseDuration(configured string, defaultVal time.Duration) time.Duration {
	if configured != "" {
		if d, err := time.ParseDuration(configured); err == nil && d >= 0 {
			return d
		}
	}

	if defaultVal < 0 {
		return 2 * time.Second
	}
	return defaultVal
}
