package github

import (
	"encoding/json"
	"fmt"
)

// pullRequestCommentsQuery selects everything the digest needs in one round
// trip: general comments, top-level reviews, and review threads with their
// conversations and diff hunks. Connection pages are capped at 100 nodes;
// totalCount still reflects the full connection size.
const pullRequestCommentsQuery = `query($owner: String!, $name: String!, $number: Int!) {
  repository(owner: $owner, name: $name) {
    pullRequest(number: $number) {
      comments(first: 100) {
        totalCount
        nodes {
          author { login }
          body
          createdAt
        }
      }
      reviews(first: 100) {
        nodes {
          author { login }
          state
          body
        }
      }
      reviewThreads(first: 100) {
        totalCount
        nodes {
          isResolved
          isOutdated
          path
          line
          comments(first: 100) {
            nodes {
              author { login }
              body
              createdAt
              diffHunk
            }
          }
        }
      }
    }
  }
}`

// graphQLRequest is the POST /graphql request body.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// BuildCommentsRequest builds the GraphQL request body for fetching a pull
// request's comment threads.
func BuildCommentsRequest(owner, repo string, pullNumber int) ([]byte, error) {
	if pullNumber <= 0 {
		return nil, fmt.Errorf("pull number must be positive, got %d", pullNumber)
	}

	body := graphQLRequest{
		Query: pullRequestCommentsQuery,
		Variables: map[string]any{
			"owner":  owner,
			"name":   repo,
			"number": pullNumber,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal GraphQL request: %w", err)
	}
	return payload, nil
}
