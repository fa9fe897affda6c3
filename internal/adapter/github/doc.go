// Package github handles GitHub-specific concerns for the digest pipeline
// without polluting the domain layer:
//
//   - Typed GraphQL schema for the PR comments query (api_types.go)
//   - Decode: classifies a raw payload into a tagged domain.Response
//   - Client: fetches raw payloads and posts finished digests
//
// The decoder is where field-fallback rules live: ghost authors and the
// missing-pull-request check are applied once at this boundary, so the
// formatter never probes optional fields.
package github
