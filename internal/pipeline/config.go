package pipeline

import (
	"fmt"
	"time"

	"github.com/grokify/releasegate/internal/analyzer"
	"github.com/grokify/releasegate/internal/semver"
	"github.com/grokify/releasegate/pkg/model"
)

// Config configures a pipeline run.
type Config struct {
	// Upstream is the repository whose tags set the major version cap, in
	// owner/repo form. Required.
	Upstream string `json:"upstream" yaml:"upstream"`

	// UpstreamBranch scopes the cap to tags reachable from this branch of
	// the upstream repository. Empty means any tag counts.
	UpstreamBranch string `json:"upstreamBranch,omitempty" yaml:"upstreamBranch,omitempty"`

	// TagSource selects the upstream listing: "tags" (default) or "releases".
	TagSource string `json:"tagSource,omitempty" yaml:"tagSource,omitempty"`

	// Project is the analyzed repository in owner/repo form. When set, the
	// commit series and release state are read from the GitHub API instead
	// of a local checkout.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// Ref is the branch or commit of the project to analyze in remote mode.
	// Empty means the default branch.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// Dir is the local checkout to analyze when Project is unset. Empty
	// means the current working directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// CommitsFile names a pre-captured git log to analyze instead of
	// reading commits from a checkout or the API. "-" reads stdin.
	CommitsFile string `json:"commitsFile,omitempty" yaml:"commitsFile,omitempty"`

	// LastVersion pins the project's last released version, skipping
	// discovery.
	LastVersion string `json:"lastVersion,omitempty" yaml:"lastVersion,omitempty"`

	// RuleSet names a predefined classification rule set.
	RuleSet string `json:"ruleSet,omitempty" yaml:"ruleSet,omitempty"`

	// RulesFile points to a YAML rule set, overriding RuleSet.
	RulesFile string `json:"rulesFile,omitempty" yaml:"rulesFile,omitempty"`

	// Token authenticates GitHub API calls. Never serialized.
	Token string `json:"-" yaml:"-"`

	// Timeout bounds each upstream API call.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// MaxRetries caps transport-level retries per upstream API call.
	MaxRetries int `json:"maxRetries,omitempty" yaml:"maxRetries,omitempty"`
}

// Validate checks the configuration without touching the network. It returns
// a ConfigError naming the offending field.
func (c *Config) Validate() error {
	if c.Upstream == "" {
		return &ConfigError{Field: "upstream", Message: "upstream repository is required (owner/repo)"}
	}
	if ref := model.ParseRepoRef(c.Upstream); !ref.IsValid() {
		return &ConfigError{Field: "upstream", Message: fmt.Sprintf("%q is not owner/repo form", c.Upstream)}
	}

	switch model.TagSource(c.TagSource) {
	case "", model.TagSourceTags, model.TagSourceReleases:
	default:
		return &ConfigError{
			Field:   "tagSource",
			Message: fmt.Sprintf("%q is not a tag source; use %s or %s", c.TagSource, model.TagSourceTags, model.TagSourceReleases),
		}
	}

	if c.Project != "" {
		if ref := model.ParseRepoRef(c.Project); !ref.IsValid() {
			return &ConfigError{Field: "project", Message: fmt.Sprintf("%q is not owner/repo form", c.Project)}
		}
	}

	if c.LastVersion != "" {
		if _, err := semver.Parse(c.LastVersion); err != nil {
			return &ConfigError{Field: "lastVersion", Message: fmt.Sprintf("%q is not semver", c.LastVersion)}
		}
	}

	if c.RuleSet != "" && c.RulesFile != "" {
		return &ConfigError{Field: "ruleSet", Message: "ruleSet and rulesFile are mutually exclusive"}
	}
	if c.RuleSet != "" && analyzer.GetRuleSet(c.RuleSet) == nil {
		return &ConfigError{
			Field:   "ruleSet",
			Message: fmt.Sprintf("unknown rule set %q; available: %v", c.RuleSet, analyzer.ListRuleSets()),
		}
	}

	return nil
}

// UpstreamRepo returns the parsed upstream reference. Call Validate first.
func (c *Config) UpstreamRepo() model.RepoRef {
	return model.ParseRepoRef(c.Upstream)
}

// ProjectRepo returns the parsed project reference, zero when unset.
func (c *Config) ProjectRepo() model.RepoRef {
	if c.Project == "" {
		return model.RepoRef{}
	}
	return model.ParseRepoRef(c.Project)
}

// Source returns the selected tag source, defaulting to the tag listing.
func (c *Config) Source() model.TagSource {
	if c.TagSource == "" {
		return model.TagSourceTags
	}
	return model.TagSource(c.TagSource)
}
