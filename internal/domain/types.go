package domain

// GhostAuthor is the sentinel substituted when a commenter's identity is
// unavailable (deleted account, or an author object without a login).
const GhostAuthor = "ghost"

// Comment is a single PR comment. For review-thread comments, DiffHunk holds
// the unified-diff excerpt the comment is anchored to; it is empty for
// general PR-level comments.
type Comment struct {
	Author    string
	Body      string
	CreatedAt string // RFC3339; sorts lexicographically
	DiffHunk  string
}

// Date returns the calendar date portion of CreatedAt (e.g. "2025-01-15").
func (c Comment) Date() string {
	if len(c.CreatedAt) < 10 {
		return c.CreatedAt
	}
	return c.CreatedAt[:10]
}

// Review is a top-level PR review (approved / changes requested / commented).
type Review struct {
	Author string
	State  string
	Body   string
}

// ReviewThread is a review conversation anchored to a file and line.
// Comments are ordered oldest first.
type ReviewThread struct {
	Status     ThreadStatus
	IsOutdated bool
	Path       string
	Line       int
	Comments   []Comment
}

// PullRequest holds the comment data fetched for a single pull request.
// All sequences preserve the order returned by the API.
type PullRequest struct {
	GeneralComments   []Comment
	TotalCommentCount int
	Reviews           []Review
	Threads           []ReviewThread
	TotalThreadCount  int
}

// ThreadsByStatus splits threads into the group matching status, preserving
// relative order.
func (pr PullRequest) ThreadsByStatus(status ThreadStatus) []ReviewThread {
	var result []ReviewThread
	for _, t := range pr.Threads {
		if t.Status == status {
			result = append(result, t)
		}
	}
	return result
}
