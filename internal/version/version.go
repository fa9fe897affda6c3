// Package version exposes the CLI version string.
package version

// version is overridden at build time via
// -ldflags "-X github.com/bkyoung/pr-digest/internal/version.version=v1.2.3".
var version = "v0.0.0"

// Value returns the version string baked into the binary.
func Value() string {
	return version
}
