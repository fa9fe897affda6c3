package git

import (
	"fmt"
	"strings"

	goGit "github.com/go-git/go-git/v5"
)

// Resolver infers GitHub repository coordinates from a local checkout.
type Resolver struct {
	repoDir string
}

// NewResolver constructs a resolver for the provided repository directory.
func NewResolver(repoDir string) *Resolver {
	return &Resolver{repoDir: repoDir}
}

// OwnerRepo returns the owner and repository name of the origin remote.
func (r *Resolver) OwnerRepo() (string, string, error) {
	repo, err := goGit.PlainOpenWithOptions(r.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("open repo: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("resolve origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL")
	}

	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner and repository from a git remote URL.
// Supports HTTPS (https://github.com/owner/repo.git) and SSH
// (git@github.com:owner/repo.git) forms.
func ParseRemoteURL(url string) (string, string, error) {
	path := url

	switch {
	case strings.Contains(path, "://"):
		// https://host/owner/repo[.git]
		parts := strings.SplitN(path, "://", 2)
		segments := strings.Split(parts[1], "/")
		if len(segments) < 3 {
			return "", "", fmt.Errorf("cannot parse remote URL: %s", url)
		}
		path = strings.Join(segments[1:], "/")
	case strings.Contains(path, ":"):
		// git@host:owner/repo[.git]
		parts := strings.SplitN(path, ":", 2)
		path = parts[1]
	}

	path = strings.TrimSuffix(path, ".git")
	path = strings.Trim(path, "/")

	segments := strings.Split(path, "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("cannot parse remote URL: %s", url)
	}

	return segments[0], segments[1], nil
}
