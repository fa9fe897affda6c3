package github

import (
	"encoding/json"

	"github.com/bkyoung/pr-digest/internal/domain"
)

// maxRawExcerpt bounds how much unparsable input is kept for diagnostics.
const maxRawExcerpt = 200

// Decode classifies a raw GraphQL payload into exactly one domain.Response
// variant. It is a total function: malformed input yields KindParseFailure
// rather than an error, because the digest pipeline must keep running on
// partial or erroneous upstream data.
//
// Classification order: parse failure, API errors, missing pull request,
// data. The checks are mutually exclusive short-circuits.
func Decode(raw string) domain.Response {
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return domain.Response{
			Kind:       domain.KindParseFailure,
			RawExcerpt: excerpt(raw),
		}
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			messages[i] = e.Message
		}
		return domain.Response{
			Kind:   domain.KindAPIErrors,
			Errors: messages,
		}
	}

	if resp.Data == nil || resp.Data.Repository == nil || resp.Data.Repository.PullRequest == nil {
		return domain.Response{Kind: domain.KindMissingPullRequest}
	}

	return domain.Response{
		Kind:        domain.KindData,
		PullRequest: mapPullRequest(resp.Data.Repository.PullRequest),
	}
}

// ResolveAuthor extracts a commenter's display name, tolerating deleted
// accounts. Returns the ghost sentinel when the actor is nil or carries no
// login.
func ResolveAuthor(actor *Actor) string {
	if actor == nil || actor.Login == "" {
		return domain.GhostAuthor
	}
	return actor.Login
}

func mapPullRequest(pr *PullRequest) domain.PullRequest {
	result := domain.PullRequest{
		TotalCommentCount: pr.Comments.TotalCount,
		TotalThreadCount:  pr.ReviewThreads.TotalCount,
	}

	for _, node := range pr.Comments.Nodes {
		result.GeneralComments = append(result.GeneralComments, mapComment(node))
	}

	for _, node := range pr.Reviews.Nodes {
		result.Reviews = append(result.Reviews, domain.Review{
			Author: ResolveAuthor(node.Author),
			State:  node.State,
			Body:   node.Body,
		})
	}

	for _, node := range pr.ReviewThreads.Nodes {
		thread := domain.ReviewThread{
			Status:     domain.ThreadStatusOf(node.IsResolved),
			IsOutdated: node.IsOutdated,
			Path:       node.Path,
			Line:       node.Line,
		}
		for _, c := range node.Comments.Nodes {
			thread.Comments = append(thread.Comments, mapComment(c))
		}
		result.Threads = append(result.Threads, thread)
	}

	return result
}

func mapComment(node CommentNode) domain.Comment {
	return domain.Comment{
		Author:    ResolveAuthor(node.Author),
		Body:      node.Body,
		CreatedAt: node.CreatedAt,
		DiffHunk:  node.DiffHunk,
	}
}

func excerpt(raw string) string {
	if len(raw) <= maxRawExcerpt {
		return raw
	}
	return raw[:maxRawExcerpt] + "..."
}
