package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v84/github"
	"github.com/grokify/mogo/net/http/retryhttp"

	"github.com/grokify/releasegate/internal/progress"
	"github.com/grokify/releasegate/pkg/model"
)

// listPageSize is the one and only page requested from the listing endpoint.
// Tags older than the most recent listPageSize records are invisible to the
// resolver; that bound keeps a single resolution to one listing call.
const listPageSize = 100

// defaultTimeout bounds each API call; a CI gate step must not hang.
const defaultTimeout = 30 * time.Second

// GitHubResolver implements Resolver against the GitHub API.
type GitHubResolver struct {
	client   *github.Client
	reporter *progress.Reporter
}

// Config configures a GitHubResolver.
type Config struct {
	// Token is an optional GitHub access token. Unauthenticated calls work
	// but run against much stricter rate limits.
	Token string

	// BaseURL overrides the API endpoint, for GitHub Enterprise or tests.
	BaseURL string

	// Timeout bounds each HTTP call. Default is 30 seconds.
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for API calls.
	MaxRetries int

	// InitialBackoff is the initial backoff duration for retries.
	InitialBackoff time.Duration

	// Reporter receives informational resolution events. May be nil.
	Reporter *progress.Reporter
}

// NewGitHubResolver creates a resolver with a retry-enabled HTTP client, so
// transient rate-limit responses are absorbed by the transport.
func NewGitHubResolver(cfg Config) (*GitHubResolver, error) {
	retryOpts := []retryhttp.Option{}

	if cfg.MaxRetries > 0 {
		retryOpts = append(retryOpts, retryhttp.WithMaxRetries(cfg.MaxRetries))
	}
	if cfg.InitialBackoff > 0 {
		retryOpts = append(retryOpts, retryhttp.WithInitialBackoff(cfg.InitialBackoff))
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Transport: retryhttp.NewWithOptions(retryOpts...),
		Timeout:   timeout,
	}

	client := github.NewClient(httpClient)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}

	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, err
		}
		client.BaseURL = base
	}

	return &GitHubResolver{
		client:   client,
		reporter: cfg.Reporter,
	}, nil
}

// ResolveCap resolves the upstream major version cap per Request.
func (r *GitHubResolver) ResolveCap(ctx context.Context, req Request) (*Resolution, error) {
	source := req.Source
	if source == "" {
		source = model.TagSourceTags
	}

	fetched, err := r.fetchTagCandidates(ctx, req.Repo, source)
	if err != nil {
		return nil, err
	}

	candidates := collectCandidates(fetched)

	res := &Resolution{
		Cap: model.Cap{
			Repo:   req.Repo,
			Branch: req.Branch,
			Source: source,
		},
		Fetched:    len(fetched),
		Candidates: len(candidates),
	}

	if len(candidates) == 0 {
		r.reporter.Infof("%s has no semver %s in the most recent %d records; major cap is 0",
			req.Repo.FullName(), source, listPageSize)
		return res, nil
	}

	if req.Branch == "" {
		res.Cap.Major = candidates[0].Major
		res.Cap.Tag = candidates[0].Name
		return res, nil
	}

	// Walk from highest to lowest and stop at the first candidate the branch
	// head has incorporated. A failed comparison only disqualifies that one
	// candidate: losing evidence can lower the cap, never raise it.
	for _, c := range candidates {
		reachable, err := r.reachableFromBranch(ctx, req.Repo, c.Name, req.Branch)
		if err != nil {
			r.reporter.Infof("skipping %s: comparing against %s failed: %v", c.Name, req.Branch, err)
			res.Unreachable = append(res.Unreachable, c.Name)
			continue
		}
		if !reachable {
			res.Unreachable = append(res.Unreachable, c.Name)
			continue
		}

		res.Cap.Major = c.Major
		res.Cap.Tag = c.Name
		return res, nil
	}

	r.reporter.Infof("%s has no semver %s reachable from %s; major cap is 0",
		req.Repo.FullName(), source, req.Branch)
	return res, nil
}

// fetchTagCandidates fetches a single page of up to listPageSize records from
// the selected listing endpoint and normalizes them to tag candidates. It
// never follows pagination.
func (r *GitHubResolver) fetchTagCandidates(ctx context.Context, repo model.RepoRef, source model.TagSource) ([]model.TagCandidate, error) {
	opts := &github.ListOptions{PerPage: listPageSize}

	var out []model.TagCandidate

	switch source {
	case model.TagSourceReleases:
		releases, _, err := r.client.Repositories.ListReleases(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, classifyListError(repo, err)
		}
		for _, rel := range releases {
			// A draft has no published tag, so it is not release evidence.
			if rel.GetDraft() || rel.GetTagName() == "" {
				continue
			}
			out = append(out, model.TagCandidate{
				Name:   rel.GetTagName(),
				Source: model.TagSourceReleases,
			})
		}
	default:
		tags, _, err := r.client.Repositories.ListTags(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, classifyListError(repo, err)
		}
		for _, t := range tags {
			if t.GetName() == "" {
				continue
			}
			out = append(out, model.TagCandidate{
				Name:   t.GetName(),
				SHA:    t.GetCommit().GetSHA(),
				Source: model.TagSourceTags,
			})
		}
	}

	return out, nil
}

// reachableFromBranch reports whether the branch head is a descendant of, or
// identical to, the tagged commit. The compare status is taken relative to
// the tag as base: "ahead" and "identical" qualify, everything else,
// "behind" and "diverged" included, does not.
func (r *GitHubResolver) reachableFromBranch(ctx context.Context, repo model.RepoRef, tag, branch string) (bool, error) {
	cmp, _, err := r.client.Repositories.CompareCommits(ctx, repo.Owner, repo.Name, tag, branch, nil)
	if err != nil {
		return false, err
	}

	status := cmp.GetStatus()
	return status == "ahead" || status == "identical", nil
}
