package commits

import (
	"context"
	"fmt"

	"github.com/google/go-github/v84/github"
	"github.com/grokify/gogithub/auth"

	"github.com/grokify/releasegate/pkg/model"
)

// commitPageSize bounds the history fetched when no release exists yet.
const commitPageSize = 100

// GitHubSource reads commits from the GitHub API, for pipelines that run
// without a local checkout.
type GitHubSource struct {
	client *github.Client
	repo   model.RepoRef
	ref    string
}

// NewGitHubSource creates a Source for the given repository. ref names the
// branch or commit to read from; empty means the default branch. The token
// may be empty for public repositories.
func NewGitHubSource(token string, repo model.RepoRef, ref string) *GitHubSource {
	ctx := context.Background()
	client := auth.NewGitHubClient(ctx, token)
	return &GitHubSource{
		client: client,
		repo:   repo,
		ref:    ref,
	}
}

// NewGitHubSourceWithClient creates a Source on an existing client.
func NewGitHubSourceWithClient(client *github.Client, repo model.RepoRef, ref string) *GitHubSource {
	return &GitHubSource{
		client: client,
		repo:   repo,
		ref:    ref,
	}
}

// Commits returns the series since the given tag, oldest first. With no tag
// it returns the most recent commitPageSize commits on the ref.
func (s *GitHubSource) Commits(ctx context.Context, since string) ([]model.Commit, error) {
	if since != "" {
		return s.commitsSince(ctx, since)
	}
	return s.recentCommits(ctx)
}

func (s *GitHubSource) commitsSince(ctx context.Context, since string) ([]model.Commit, error) {
	head := s.ref
	if head == "" {
		head = "HEAD"
	}

	comparison, _, err := s.client.Repositories.CompareCommits(
		ctx, s.repo.Owner, s.repo.Name, since, head,
		&github.ListOptions{PerPage: commitPageSize})
	if err != nil {
		return nil, fmt.Errorf("comparing %s...%s in %s: %w", since, head, s.repo.FullName(), err)
	}

	// The comparison lists commits oldest first already.
	commits := make([]model.Commit, 0, len(comparison.Commits))
	for _, rc := range comparison.Commits {
		commits = append(commits, convertCommit(rc))
	}
	return commits, nil
}

func (s *GitHubSource) recentCommits(ctx context.Context) ([]model.Commit, error) {
	opts := &github.CommitsListOptions{
		SHA:         s.ref,
		ListOptions: github.ListOptions{PerPage: commitPageSize},
	}

	listed, _, err := s.client.Repositories.ListCommits(ctx, s.repo.Owner, s.repo.Name, opts)
	if err != nil {
		return nil, fmt.Errorf("listing commits in %s: %w", s.repo.FullName(), err)
	}

	// The listing is newest first; flip it to match the contract.
	commits := make([]model.Commit, 0, len(listed))
	for i := len(listed) - 1; i >= 0; i-- {
		commits = append(commits, convertCommit(listed[i]))
	}
	return commits, nil
}

// convertCommit maps an API commit to the model, splitting the message into
// header and body.
func convertCommit(rc *github.RepositoryCommit) model.Commit {
	header, body := splitMessage(rc.GetCommit().GetMessage())
	return model.Commit{
		SHA:    rc.GetSHA(),
		Header: header,
		Body:   body,
	}
}
