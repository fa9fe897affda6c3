package domain

// ResponseKind classifies a decoded GraphQL payload. Exactly one kind applies
// to any input; the checks are applied in declaration order and the first
// match wins.
type ResponseKind int

const (
	// KindParseFailure indicates the payload was not valid JSON.
	KindParseFailure ResponseKind = iota

	// KindAPIErrors indicates the GraphQL layer reported errors.
	KindAPIErrors

	// KindMissingPullRequest indicates valid JSON without the expected
	// data.repository.pullRequest record (deleted or inaccessible PR).
	KindMissingPullRequest

	// KindData indicates pull request data was present and decoded.
	KindData
)

// Response is the tagged result of classifying a raw GraphQL payload.
// Only the fields matching Kind are populated.
type Response struct {
	Kind ResponseKind

	// RawExcerpt holds a bounded prefix of the unparsable input, kept to aid
	// debugging. Set only for KindParseFailure.
	RawExcerpt string

	// Errors holds the GraphQL error messages in original order. Set only for
	// KindAPIErrors; always non-empty in that case.
	Errors []string

	// PullRequest is the decoded PR data. Set only for KindData.
	PullRequest PullRequest
}
