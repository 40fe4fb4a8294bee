// Package pipeline orchestrates the release-gate lifecycle: verify the
// configuration and resolve the upstream cap, then analyze commits and rule
// on the verdict.
package pipeline

import (
	"context"
	"time"

	"github.com/grokify/releasegate/internal/analyzer"
	"github.com/grokify/releasegate/internal/commits"
	"github.com/grokify/releasegate/internal/gate"
	"github.com/grokify/releasegate/internal/progress"
	"github.com/grokify/releasegate/internal/project"
	"github.com/grokify/releasegate/internal/semver"
	"github.com/grokify/releasegate/internal/upstream"
	"github.com/grokify/releasegate/pkg/model"
)

// firstVersion is the version a project's first release gets, whatever the
// verdict.
const firstVersion = "v1.0.0"

// Pipeline runs the release-gate steps against one project.
type Pipeline struct {
	cfg        Config
	resolver   upstream.Resolver
	classifier analyzer.Classifier
	source     commits.Source
	versions   project.VersionSource
	gate       *gate.Evaluator
	reporter   *progress.Reporter
}

// Options overrides the default collaborators, mainly for tests and for
// embedding the pipeline with a different classifier.
type Options struct {
	Resolver   upstream.Resolver
	Classifier analyzer.Classifier
	Commits    commits.Source
	Versions   project.VersionSource
	Reporter   *progress.Reporter
}

// New creates a pipeline for the given configuration. The configuration is
// validated here and again by VerifyConditions; collaborators left nil in
// opts get GitHub- or git-backed defaults derived from the configuration.
func New(cfg Config, opts Options) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:        cfg,
		resolver:   opts.Resolver,
		classifier: opts.Classifier,
		source:     opts.Commits,
		versions:   opts.Versions,
		reporter:   opts.Reporter,
		gate:       gate.New(opts.Reporter),
	}

	if p.resolver == nil {
		resolver, err := upstream.NewGitHubResolver(upstream.Config{
			Token:      cfg.Token,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			Reporter:   opts.Reporter,
		})
		if err != nil {
			return nil, err
		}
		p.resolver = resolver
	}

	if p.classifier == nil {
		classifier, err := defaultClassifier(cfg)
		if err != nil {
			return nil, err
		}
		p.classifier = classifier
	}

	if p.source == nil {
		switch {
		case cfg.CommitsFile != "":
			p.source = commits.NewFileSource(cfg.CommitsFile)
		case cfg.ProjectRepo().IsValid():
			p.source = commits.NewGitHubSource(cfg.Token, cfg.ProjectRepo(), cfg.Ref)
		default:
			p.source = commits.NewGitSource(cfg.Dir)
		}
	}

	if p.versions == nil {
		switch {
		case cfg.LastVersion != "":
			p.versions = project.Static(cfg.LastVersion)
		case cfg.ProjectRepo().IsValid():
			p.versions = project.NewGitHubVersions(cfg.Token, cfg.ProjectRepo())
		default:
			p.versions = project.NewGitVersions(cfg.Dir)
		}
	}

	return p, nil
}

// defaultClassifier builds the conventional classifier from the configured
// rules file or rule set name.
func defaultClassifier(cfg Config) (analyzer.Classifier, error) {
	if cfg.RulesFile != "" {
		rules, err := analyzer.LoadRuleSetFromFile(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		return analyzer.NewConventional(rules), nil
	}
	if cfg.RuleSet != "" {
		return analyzer.NewConventional(analyzer.GetRuleSet(cfg.RuleSet)), nil
	}
	return analyzer.NewConventional(nil), nil
}

// VerifyConditions validates the configuration and resolves the upstream
// cap. The cap is stored in rc, when given, for the analyze step. A
// resolution that finds no qualifying tag succeeds with a cap of zero; only
// configuration and upstream API failures error.
func (p *Pipeline) VerifyConditions(ctx context.Context, rc *RunContext) (*model.VerifyResult, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := p.resolver.ResolveCap(ctx, upstream.Request{
		Repo:   p.cfg.UpstreamRepo(),
		Branch: p.cfg.UpstreamBranch,
		Source: p.cfg.Source(),
	})
	if err != nil {
		return nil, err
	}

	if rc != nil {
		rc.SetCap(res.Cap)
	}

	p.reporter.Infof("resolved major cap %d from %s (%d records, %d semver)",
		res.Cap.Major, res.Cap.Repo.FullName(), res.Fetched, res.Candidates)

	return &model.VerifyResult{
		Timestamp:   time.Now().UTC(),
		Cap:         res.Cap,
		Fetched:     res.Fetched,
		Candidates:  res.Candidates,
		Unreachable: res.Unreachable,
	}, nil
}

// AnalyzeCommits classifies the commit series since the last release and
// applies the major cap to the verdict. The cap resolved by an earlier
// VerifyConditions on the same RunContext is reused; without one, the cap
// is resolved here so the step also works standalone.
//
// On a blocked release the returned result is still populated, alongside a
// *gate.CapExceededError, so callers can render the decision before failing.
func (p *Pipeline) AnalyzeCommits(ctx context.Context, rc *RunContext) (*model.AnalyzeResult, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	var cap *model.Cap
	if rc != nil {
		cap = rc.ResolvedCap()
	}
	if cap == nil {
		p.reporter.Infof("no cap resolved in this run yet; resolving now")
		res, err := p.resolver.ResolveCap(ctx, upstream.Request{
			Repo:   p.cfg.UpstreamRepo(),
			Branch: p.cfg.UpstreamBranch,
			Source: p.cfg.Source(),
		})
		if err != nil {
			return nil, err
		}
		cap = &res.Cap
		if rc != nil {
			rc.SetCap(res.Cap)
		}
	}

	lastVersion, err := p.versions.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	series, err := p.source.Commits(ctx, lastVersion)
	if err != nil {
		return nil, err
	}

	verdict := p.classifier.Classify(series)
	p.reporter.Infof("classified %d commits since %s as %s",
		len(series), displayVersion(lastVersion), verdict.OrNone())

	decision, gateErr := p.gate.Evaluate(verdict, lastVersion, cap)

	result := &model.AnalyzeResult{
		Timestamp:   time.Now().UTC(),
		Commits:     len(series),
		Verdict:     verdict.OrNone(),
		LastVersion: lastVersion,
		NextVersion: nextVersion(lastVersion, verdict),
		Gate:        decision,
	}
	return result, gateErr
}

// nextVersion computes the version the verdict would release. Empty when
// the verdict calls for no release or the last version does not parse.
func nextVersion(lastVersion string, verdict model.ReleaseType) string {
	if verdict.IsNone() {
		return ""
	}
	if lastVersion == "" {
		return firstVersion
	}

	ver, err := semver.Parse(lastVersion)
	if err != nil {
		return ""
	}

	switch verdict {
	case model.ReleaseTypeMajor:
		return ver.BumpMajor().String()
	case model.ReleaseTypeMinor:
		return ver.BumpMinor().String()
	default:
		return ver.BumpPatch().String()
	}
}

// displayVersion renders an empty last version readably in log lines.
func displayVersion(v string) string {
	if v == "" {
		return "the beginning"
	}
	return v
}
