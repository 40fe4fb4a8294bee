package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v84/github"
	"github.com/grokify/gogithub/auth"
	"github.com/grokify/gogithub/release"
	"github.com/grokify/gogithub/tag"

	"github.com/grokify/releasegate/internal/semver"
	"github.com/grokify/releasegate/pkg/model"
)

// GitHubVersions reads the project's release state from the GitHub API.
type GitHubVersions struct {
	client *github.Client
	repo   model.RepoRef
}

// NewGitHubVersions creates a VersionSource for the given repository.
func NewGitHubVersions(token string, repo model.RepoRef) *GitHubVersions {
	ctx := context.Background()
	client := auth.NewGitHubClient(ctx, token)
	return &GitHubVersions{
		client: client,
		repo:   repo,
	}
}

// NewGitHubVersionsWithClient creates a VersionSource on an existing client.
func NewGitHubVersionsWithClient(client *github.Client, repo model.RepoRef) *GitHubVersions {
	return &GitHubVersions{
		client: client,
		repo:   repo,
	}
}

// LatestVersion returns the latest released version. The published "latest
// release" wins when its tag is semver; otherwise the highest semver tag
// does. Both absent means no releases yet, reported as an empty string.
func (p *GitHubVersions) LatestVersion(ctx context.Context) (string, error) {
	ghRelease, err := release.GetLatestRelease(ctx, p.client, p.repo.Owner, p.repo.Name)
	if err != nil {
		// Check for 404 (no releases)
		if !strings.Contains(err.Error(), "404") {
			return "", fmt.Errorf("fetching latest release for %s: %w", p.repo.FullName(), err)
		}
	} else if tagName := ghRelease.GetTagName(); semver.IsValid(tagName) {
		return tagName, nil
	}

	tagNames, err := tag.GetTagNames(ctx, p.client, p.repo.Owner, p.repo.Name)
	if err != nil {
		return "", fmt.Errorf("listing tags for %s: %w", p.repo.FullName(), err)
	}

	return semver.FindLatest(tagNames), nil
}
