package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bkyoung/pr-digest/internal/adapter/cli"
	"github.com/bkyoung/pr-digest/internal/adapter/github"
	"github.com/bkyoung/pr-digest/internal/adapter/store/sqlite"
	"github.com/bkyoung/pr-digest/internal/usecase/digest"
)

const emptyPRPayload = `{"data":{"repository":{"pullRequest":{
	"comments":{"totalCount":0,"nodes":[]},
	"reviews":{"nodes":[]},
	"reviewThreads":{"totalCount":0,"nodes":[]}}}}}`

type fetcherStub struct {
	raw        string
	fetchErr   error
	postErr    error
	postedBody string
	owner      string
	repo       string
	pullNumber int
}

func (f *fetcherStub) FetchPullRequestComments(ctx context.Context, owner, repo string, pullNumber int) (string, error) {
	f.owner = owner
	f.repo = repo
	f.pullNumber = pullNumber
	return f.raw, f.fetchErr
}

func (f *fetcherStub) PostDigestComment(ctx context.Context, owner, repo string, pullNumber int, body string) error {
	f.postedBody = body
	return f.postErr
}

type resolverStub struct {
	owner string
	repo  string
	err   error
}

func (r *resolverStub) OwnerRepo() (string, string, error) {
	return r.owner, r.repo, r.err
}

func newDeps() cli.Dependencies {
	return cli.Dependencies{
		Digester: digest.NewService(github.Decode, 0),
		Decode:   github.Decode,
		Version:  "v1.2.3",
	}
}

func TestFormatCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(path, []byte(emptyPRPayload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	buf := &bytes.Buffer{}
	deps := newDeps()
	deps.Args = cli.Arguments{OutWriter: buf, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"format", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# EXISTING PR COMMENTS") {
		t.Fatalf("expected digest header, got:\n%s", out)
	}
	if !strings.Contains(out, "No general comments found.") {
		t.Fatalf("expected empty-comments marker, got:\n%s", out)
	}
}

func TestFormatCommandReadsStdin(t *testing.T) {
	buf := &bytes.Buffer{}
	deps := newDeps()
	deps.Args = cli.Arguments{
		InReader:  strings.NewReader("not json"),
		OutWriter: buf,
		ErrWriter: io.Discard,
	}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"format"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if !strings.Contains(buf.String(), "Unable to parse GitHub API response") {
		t.Fatalf("expected parse-failure digest, got:\n%s", buf.String())
	}
}

func TestFormatCommandMissingFile(t *testing.T) {
	deps := newDeps()
	deps.Args = cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"format", filepath.Join(t.TempDir(), "missing.json")})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFetchCommandInvokesFetcher(t *testing.T) {
	stub := &fetcherStub{raw: emptyPRPayload}
	buf := &bytes.Buffer{}

	deps := newDeps()
	deps.Fetcher = stub
	deps.Args = cli.Arguments{OutWriter: buf, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"fetch", "--owner", "octocat", "--repo", "hello", "--pr", "42"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.owner != "octocat" || stub.repo != "hello" || stub.pullNumber != 42 {
		t.Fatalf("unexpected fetch coordinates: %s/%s#%d", stub.owner, stub.repo, stub.pullNumber)
	}
	if !strings.Contains(buf.String(), "# EXISTING PR COMMENTS") {
		t.Fatalf("expected digest output, got:\n%s", buf.String())
	}
}

func TestFetchCommandResolvesOwnerRepoFromRemote(t *testing.T) {
	stub := &fetcherStub{raw: emptyPRPayload}

	deps := newDeps()
	deps.Fetcher = stub
	deps.Resolver = &resolverStub{owner: "detected-owner", repo: "detected-repo"}
	deps.Args = cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"fetch", "--pr", "7"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.owner != "detected-owner" || stub.repo != "detected-repo" {
		t.Fatalf("expected detected coordinates, got %s/%s", stub.owner, stub.repo)
	}
}

func TestFetchCommandResolverFailureSuggestsFlags(t *testing.T) {
	deps := newDeps()
	deps.Fetcher = &fetcherStub{raw: emptyPRPayload}
	deps.Resolver = &resolverStub{err: errors.New("repository does not exist")}
	deps.Args = cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"fetch", "--pr", "7"})
	err := root.Execute()
	if err == nil {
		t.Fatal("expected error when remote detection fails")
	}
	if !strings.Contains(err.Error(), "--owner") {
		t.Fatalf("expected hint about --owner flag, got: %v", err)
	}
}

func TestFetchCommandRequiresPositivePR(t *testing.T) {
	deps := newDeps()
	deps.Fetcher = &fetcherStub{}
	deps.Args = cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"fetch", "--owner", "o", "--repo", "r"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing --pr")
	}
}

func TestFetchCommandPostsDigest(t *testing.T) {
	stub := &fetcherStub{raw: emptyPRPayload}

	deps := newDeps()
	deps.Fetcher = stub
	deps.Args = cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"fetch", "--owner", "o", "--repo", "r", "--pr", "1", "--post"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if !strings.Contains(stub.postedBody, "# EXISTING PR COMMENTS") {
		t.Fatalf("expected posted body to contain digest, got:\n%s", stub.postedBody)
	}
}

func TestFetchCommandRecordsHistory(t *testing.T) {
	history, err := sqlite.NewStore(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer history.Close()

	deps := newDeps()
	deps.Fetcher = &fetcherStub{raw: emptyPRPayload}
	deps.History = history
	deps.Args = cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"fetch", "--owner", "octocat", "--repo", "hello", "--pr", "42"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	records, err := history.ListDigests(context.Background(), "octocat/hello", 42, 10)
	if err != nil {
		t.Fatalf("list digests: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	if !strings.Contains(records[0].Digest, "# EXISTING PR COMMENTS") {
		t.Fatalf("unexpected recorded digest:\n%s", records[0].Digest)
	}
}

func TestHistoryCommandListsRecords(t *testing.T) {
	history, err := sqlite.NewStore(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer history.Close()

	deps := newDeps()
	deps.Fetcher = &fetcherStub{raw: emptyPRPayload}
	deps.History = history
	deps.Args = cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"fetch", "--owner", "o", "--repo", "r", "--pr", "3"})
	if err := root.Execute(); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	buf := &bytes.Buffer{}
	deps.Args = cli.Arguments{OutWriter: buf, ErrWriter: io.Discard}
	root = cli.NewRootCommand(deps)
	root.SetArgs([]string{"history", "--repository", "o/r", "--pr", "3"})
	if err := root.Execute(); err != nil {
		t.Fatalf("history failed: %v", err)
	}

	if !strings.Contains(buf.String(), "comments=0 threads=0 reviews=0") {
		t.Fatalf("unexpected history output:\n%s", buf.String())
	}
}

func TestVersionFlagEmitsVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	deps := newDeps()
	deps.Version = "v9.9.9"
	deps.Args = cli.Arguments{OutWriter: buf, ErrWriter: io.Discard}

	root := cli.NewRootCommand(deps)
	root.SetArgs([]string{"--version"})
	err := root.Execute()
	if !errors.Is(err, cli.ErrVersionRequested) {
		t.Fatalf("expected ErrVersionRequested, got %v", err)
	}
	if !strings.Contains(buf.String(), "v9.9.9") {
		t.Fatalf("expected version output, got %q", buf.String())
	}
}
