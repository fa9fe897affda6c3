package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bkyoung/pr-digest/internal/adapter/cli"
	"github.com/bkyoung/pr-digest/internal/adapter/git"
	githubadapter "github.com/bkyoung/pr-digest/internal/adapter/github"
	ghhttp "github.com/bkyoung/pr-digest/internal/adapter/github/http"
	"github.com/bkyoung/pr-digest/internal/adapter/store/sqlite"
	"github.com/bkyoung/pr-digest/internal/config"
	"github.com/bkyoung/pr-digest/internal/store"
	"github.com/bkyoung/pr-digest/internal/usecase/digest"
	"github.com/bkyoung/pr-digest/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "prd",
		EnvPrefix:   "PRD",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	digester := digest.NewService(githubadapter.Decode, cfg.Digest.MaxDiffHunkLength)

	// GitHub client only when a token is available; the format command works
	// without one.
	var fetcher cli.CommentsFetcher
	token := cfg.GitHub.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token != "" {
		client := githubadapter.NewClient(token)
		if cfg.GitHub.BaseURL != "" {
			client.SetBaseURL(cfg.GitHub.BaseURL)
		}
		client.SetTimeout(ghhttp.ParseTimeout(cfg.HTTP.Timeout, 30*time.Second))
		client.SetRetryConfig(ghhttp.BuildRetryConfig(cfg.HTTP))
		if logger := buildLogger(cfg.Logging); logger != nil {
			client.SetLogger(logger)
		}
		fetcher = client
	}

	// Initialize history store if enabled
	var history store.Store
	if cfg.Store.Enabled {
		storeDir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(storeDir, 0o755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else {
			sqliteStore, err := sqlite.NewStore(cfg.Store.Path)
			if err != nil {
				log.Printf("warning: failed to initialize store: %v", err)
			} else {
				history = sqliteStore
				defer func() { _ = history.Close() }()
			}
		}
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Digester: digester,
		Decode:   githubadapter.Decode,
		Fetcher:  fetcher,
		Resolver: git.NewResolver("."),
		History:  history,
		Version:  version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// buildLogger creates the API request logger based on configuration.
func buildLogger(cfg config.LoggingConfig) ghhttp.Logger {
	if !cfg.Enabled {
		return nil
	}

	logLevel := ghhttp.LogLevelInfo
	switch cfg.Level {
	case "debug":
		logLevel = ghhttp.LogLevelDebug
	case "error":
		logLevel = ghhttp.LogLevelError
	}

	logFormat := ghhttp.LogFormatHuman
	if cfg.Format == "json" {
		logFormat = ghhttp.LogFormatJSON
	}

	return ghhttp.NewDefaultLogger(logLevel, logFormat, cfg.RedactToken)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "prd"))
	}
	return paths
}

// Compile-time interface compliance checks
var _ cli.CommentsFetcher = (*githubadapter.Client)(nil)
var _ cli.RepoResolver = (*git.Resolver)(nil)
var _ store.Store = (*sqlite.Store)(nil)
