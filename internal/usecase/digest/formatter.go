package digest

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/pr-digest/internal/domain"
)

// DefaultMaxDiffHunkLength bounds embedded diff excerpts so a single large
// hunk cannot dominate the digest.
const DefaultMaxDiffHunkLength = 400

// Decoder classifies a raw GraphQL payload into a tagged domain response.
type Decoder func(raw string) domain.Response

// Service renders raw GitHub payloads into plain-text digests. It is a
// one-shot, deterministic text transform: every malformed or unexpected
// input degrades to a diagnostic string, never an error, because the CI
// pipeline embedding the digest must keep running on partial upstream data.
type Service struct {
	decode            Decoder
	maxDiffHunkLength int
}

// NewService constructs a digest service. maxDiffHunkLength <= 0 selects the
// default budget.
func NewService(decode Decoder, maxDiffHunkLength int) *Service {
	if maxDiffHunkLength <= 0 {
		maxDiffHunkLength = DefaultMaxDiffHunkLength
	}
	return &Service{
		decode:            decode,
		maxDiffHunkLength: maxDiffHunkLength,
	}
}

// Digest converts a raw GraphQL response into the complete digest string.
func (s *Service) Digest(raw string) string {
	return s.Render(s.decode(raw))
}

// Render produces the digest for an already-classified response. The three
// failure variants are mutually exclusive short-circuits; only KindData
// yields a full report.
func (s *Service) Render(resp domain.Response) string {
	switch resp.Kind {
	case domain.KindAPIErrors:
		return "GitHub API error: " + strings.Join(resp.Errors, "; ")
	case domain.KindMissingPullRequest:
		return "No PR data found in GitHub API response"
	case domain.KindData:
		return s.renderPullRequest(resp.PullRequest)
	default:
		return "Unable to parse GitHub API response: " + resp.RawExcerpt
	}
}

func (s *Service) renderPullRequest(pr domain.PullRequest) string {
	var b strings.Builder

	b.WriteString("# EXISTING PR COMMENTS\n\n")

	s.writeGeneralComments(&b, pr)
	s.writeDiscussions(&b, pr)
	s.writeReviews(&b, pr.Reviews)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (s *Service) writeGeneralComments(b *strings.Builder, pr domain.PullRequest) {
	b.WriteString("## General Comments")
	if pr.TotalCommentCount > len(pr.GeneralComments) {
		fmt.Fprintf(b, " (showing %d of %d)", len(pr.GeneralComments), pr.TotalCommentCount)
	}
	b.WriteString("\n\n")

	if len(pr.GeneralComments) == 0 {
		b.WriteString("No general comments found.\n\n")
		return
	}

	for _, c := range pr.GeneralComments {
		s.writeComment(b, c)
	}
}

func (s *Service) writeDiscussions(b *strings.Builder, pr domain.PullRequest) {
	b.WriteString("## Code Review Discussions")
	if pr.TotalThreadCount > len(pr.Threads) {
		fmt.Fprintf(b, " (showing %d of %d)", len(pr.Threads), pr.TotalThreadCount)
	}
	b.WriteString("\n\n")

	unresolved := pr.ThreadsByStatus(domain.StatusUnresolved)
	b.WriteString("### " + domain.StatusUnresolved.Heading() + "\n\n")
	if len(unresolved) == 0 {
		b.WriteString("No unresolved discussions.\n\n")
	} else {
		for _, t := range unresolved {
			s.writeThread(b, t)
		}
	}

	// The resolved group is informational; omit it entirely when empty so
	// absence of the heading is unambiguous.
	resolved := pr.ThreadsByStatus(domain.StatusResolved)
	if len(resolved) > 0 {
		b.WriteString("### " + domain.StatusResolved.Heading() + "\n\n")
		for _, t := range resolved {
			s.writeThread(b, t)
		}
	}
}

func (s *Service) writeThread(b *strings.Builder, t domain.ReviewThread) {
	fmt.Fprintf(b, "%s:L%d [%s]", t.Path, t.Line, t.Status.Tag())
	if t.IsOutdated {
		b.WriteString(" (outdated)")
	}
	b.WriteString("\n")

	for _, c := range t.Comments {
		fmt.Fprintf(b, "@%s (%s):\n%s\n", c.Author, c.Date(), c.Body)
		if c.DiffHunk != "" {
			b.WriteString("```diff\n")
			b.WriteString(TruncateDiffHunk(c.DiffHunk, s.maxDiffHunkLength))
			b.WriteString("\n```\n")
		}
	}
	b.WriteString("\n")
}

func (s *Service) writeComment(b *strings.Builder, c domain.Comment) {
	fmt.Fprintf(b, "@%s (%s):\n%s\n\n", c.Author, c.Date(), c.Body)
}

func (s *Service) writeReviews(b *strings.Builder, reviews []domain.Review) {
	if len(reviews) == 0 {
		return
	}

	b.WriteString("## Reviews\n\n")
	for _, r := range reviews {
		fmt.Fprintf(b, "- @%s [%s]", r.Author, formatReviewState(r.State))
		if r.Body != "" {
			b.WriteString(": " + strings.TrimSpace(r.Body))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// formatReviewState turns API states like CHANGES_REQUESTED into readable
// text ("Changes Requested").
func formatReviewState(state string) string {
	if state == "" {
		return "Commented"
	}
	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(strings.ReplaceAll(state, "_", " ")))
}
