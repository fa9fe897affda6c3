package github

// GitHub GraphQL API types for the pull request comments query.
// See: https://docs.github.com/en/graphql/reference/objects#pullrequest
//
// Optional fields in the wire format are pointers so that absence, null, and
// presence stay distinguishable after decoding. The fallback rules (ghost
// authors, missing pull request record) live in decode.go, not in the
// formatter.

// Response is the GraphQL envelope: either an error list or a data tree.
type Response struct {
	Errors []GraphQLError `json:"errors,omitempty"`
	Data   *ResponseData  `json:"data,omitempty"`
}

// GraphQLError is a single entry of the GraphQL errors list.
type GraphQLError struct {
	Message string `json:"message"`
}

// ResponseData is the data tree root.
type ResponseData struct {
	Repository *Repository `json:"repository,omitempty"`
}

// Repository wraps the queried pull request.
type Repository struct {
	PullRequest *PullRequest `json:"pullRequest,omitempty"`
}

// PullRequest holds the three comment connections the query selects.
type PullRequest struct {
	Comments      CommentConnection `json:"comments"`
	Reviews       ReviewConnection  `json:"reviews"`
	ReviewThreads ThreadConnection  `json:"reviewThreads"`
}

// CommentConnection is a page of comments plus the connection total.
type CommentConnection struct {
	Nodes      []CommentNode `json:"nodes"`
	TotalCount int           `json:"totalCount"`
}

// CommentNode is a single comment as returned by the API. Author is nil for
// deleted accounts; DiffHunk is only present on review-thread comments.
type CommentNode struct {
	Author    *Actor `json:"author,omitempty"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	DiffHunk  string `json:"diffHunk,omitempty"`
}

// Actor identifies a commenter. Login may be empty for actors that carry no
// login sub-field.
type Actor struct {
	Login string `json:"login"`
}

// ReviewConnection is a page of top-level reviews.
type ReviewConnection struct {
	Nodes []ReviewNode `json:"nodes"`
}

// ReviewNode is a single PR review.
type ReviewNode struct {
	Author *Actor `json:"author,omitempty"`
	State  string `json:"state"`
	Body   string `json:"body,omitempty"`
}

// ThreadConnection is a page of review threads plus the connection total.
type ThreadConnection struct {
	Nodes      []ThreadNode `json:"nodes"`
	TotalCount int          `json:"totalCount"`
}

// ThreadNode is a review thread anchored to a file and line.
type ThreadNode struct {
	IsResolved bool              `json:"isResolved"`
	IsOutdated bool              `json:"isOutdated"`
	Path       string            `json:"path"`
	Line       int               `json:"line"`
	Comments   CommentConnection `json:"comments"`
}

// ErrorResponse represents an error response from the GitHub REST API.
type ErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
	Errors           []struct {
		Resource string `json:"resource"`
		Field    string `json:"field"`
		Code     string `json:"code"`
		Message  string `json:"message"`
	} `json:"errors,omitempty"`
}
