package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bkyoung/pr-digest/internal/domain"
	"github.com/bkyoung/pr-digest/internal/store"
	"github.com/bkyoung/pr-digest/internal/usecase/digest"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// CommentsFetcher defines the GitHub API dependency for the fetch command.
type CommentsFetcher interface {
	FetchPullRequestComments(ctx context.Context, owner, repo string, pullNumber int) (string, error)
	PostDigestComment(ctx context.Context, owner, repo string, pullNumber int, body string) error
}

// RepoResolver infers owner and repository from the local checkout.
type RepoResolver interface {
	OwnerRepo() (owner, repo string, err error)
}

// Arguments encapsulates IO streams injected from the host process.
type Arguments struct {
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Digester *digest.Service
	Decode   digest.Decoder
	Fetcher  CommentsFetcher
	Resolver RepoResolver
	History  store.Store // nil disables history recording
	Args     Arguments
	Version  string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "prd",
		Short: "Digest GitHub PR comment threads into plain text",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	inReader := deps.Args.InReader
	if inReader == nil {
		inReader = os.Stdin
	}
	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(formatCommand(deps, inReader))
	root.AddCommand(fetchCommand(deps))
	if deps.History != nil {
		root.AddCommand(historyCommand(deps.History))
	}

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func formatCommand(deps Dependencies, inReader io.Reader) *cobra.Command {
	var repository string
	var pullNumber int

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format a saved GraphQL response into a digest",
		Long: "Reads a raw GitHub GraphQL response from a file (or stdin when no " +
			"file is given) and writes the plain-text digest to stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error

			if len(args) > 0 {
				raw, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read payload: %w", err)
				}
			} else {
				if f, ok := inReader.(*os.File); ok && digest.IsTTY(f.Fd()) {
					return fmt.Errorf("no input file given and stdin is a terminal; pipe a GraphQL response or pass a file")
				}
				raw, err = io.ReadAll(inReader)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			out := deps.Digester.Digest(string(raw))
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)

			if repository != "" && pullNumber > 0 {
				recordHistory(cmd, deps, repository, pullNumber, string(raw), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repository, "repository", "", "Repository as owner/name, used only for history recording")
	cmd.Flags().IntVar(&pullNumber, "pr", 0, "Pull request number, used only for history recording")

	return cmd
}

func fetchCommand(deps Dependencies) *cobra.Command {
	var owner string
	var repo string
	var pullNumber int
	var post bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch PR comments from GitHub and print the digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.Fetcher == nil {
				return fmt.Errorf("no GitHub token configured; set GITHUB_TOKEN")
			}
			if pullNumber <= 0 {
				return fmt.Errorf("--pr must be a positive integer")
			}

			if owner == "" || repo == "" {
				if deps.Resolver == nil {
					return fmt.Errorf("--owner and --repo are required outside a git checkout")
				}
				detectedOwner, detectedRepo, err := deps.Resolver.OwnerRepo()
				if err != nil {
					return fmt.Errorf("detect repository from origin remote: %w (pass --owner and --repo)", err)
				}
				if owner == "" {
					owner = detectedOwner
				}
				if repo == "" {
					repo = detectedRepo
				}
			}

			ctx := cmd.Context()
			raw, err := deps.Fetcher.FetchPullRequestComments(ctx, owner, repo, pullNumber)
			if err != nil {
				return fmt.Errorf("fetch PR comments: %w", err)
			}

			out := deps.Digester.Digest(raw)
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)

			recordHistory(cmd, deps, owner+"/"+repo, pullNumber, raw, out)

			if post {
				if err := deps.Fetcher.PostDigestComment(ctx, owner, repo, pullNumber, out); err != nil {
					return fmt.Errorf("post digest comment: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "posted digest to %s/%s#%d\n", owner, repo, pullNumber)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Repository owner (default: inferred from origin remote)")
	cmd.Flags().StringVar(&repo, "repo", "", "Repository name (default: inferred from origin remote)")
	cmd.Flags().IntVar(&pullNumber, "pr", 0, "Pull request number")
	cmd.Flags().BoolVar(&post, "post", false, "Post the digest back to the PR as an issue comment")

	return cmd
}

func historyCommand(history store.Store) *cobra.Command {
	var repository string
	var pullNumber int
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated digests for a pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if repository == "" || pullNumber <= 0 {
				return fmt.Errorf("--repository and --pr are required")
			}

			records, err := history.ListDigests(cmd.Context(), repository, pullNumber, limit)
			if err != nil {
				return fmt.Errorf("list digests: %w", err)
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no digests recorded for %s#%d\n", repository, pullNumber)
				return nil
			}

			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tcomments=%d threads=%d reviews=%d\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.GeneralComments, r.Threads, r.Reviews)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repository, "repository", "", "Repository as owner/name")
	cmd.Flags().IntVar(&pullNumber, "pr", 0, "Pull request number")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of records to show")

	return cmd
}

// recordHistory saves the digest when a store is configured. Failures are
// reported as warnings and never fail the command.
func recordHistory(cmd *cobra.Command, deps Dependencies, repository string, pullNumber int, raw, out string) {
	if deps.History == nil || deps.Decode == nil {
		return
	}

	record := store.DigestRecord{
		Repository: strings.TrimSpace(repository),
		PullNumber: pullNumber,
		Digest:     out,
	}

	resp := deps.Decode(raw)
	if resp.Kind == domain.KindData {
		record.GeneralComments = len(resp.PullRequest.GeneralComments)
		record.Threads = len(resp.PullRequest.Threads)
		record.Reviews = len(resp.PullRequest.Reviews)
	}

	if _, err := deps.History.SaveDigest(cmd.Context(), record); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record digest history: %v\n", err)
	}
}
