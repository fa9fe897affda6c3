package config

// Config represents the full application configuration.
type Config struct {
	GitHub  GitHubConfig  `yaml:"github"`
	HTTP    HTTPConfig    `yaml:"http"`
	Digest  DigestConfig  `yaml:"digest"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// GitHubConfig configures access to the GitHub API.
type GitHubConfig struct {
	// BaseURL overrides the API host (GitHub Enterprise). Empty selects
	// https://api.github.com.
	BaseURL string `yaml:"baseURL"`

	// Token is the API token. Usually left empty in the file and supplied
	// through GITHUB_TOKEN.
	Token string `yaml:"token"`
}

// HTTPConfig holds global HTTP client settings.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxRetries        int     `yaml:"maxRetries"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

// DigestConfig configures digest rendering.
type DigestConfig struct {
	// MaxDiffHunkLength bounds embedded diff excerpts, in characters.
	// Zero selects the built-in default.
	MaxDiffHunkLength int `yaml:"maxDiffHunkLength"`
}

// StoreConfig configures the digest history store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures API request logging.
type LoggingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Level       string `yaml:"level"`       // debug, info, error
	Format      string `yaml:"format"`      // json, human
	RedactToken bool   `yaml:"redactToken"` // Redact token in logs
}
