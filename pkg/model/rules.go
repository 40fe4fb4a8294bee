package model

// RuleSet maps conventional commit types to release verdicts.
type RuleSet struct {
	Name  string        `json:"name,omitempty" yaml:"name,omitempty"`
	Rules []ReleaseRule `json:"rules" yaml:"rules"`
}

// ReleaseRule maps one commit type (optionally scoped) to a release type.
type ReleaseRule struct {
	Type    string      `json:"type" yaml:"type"`
	Scope   string      `json:"scope,omitempty" yaml:"scope,omitempty"`
	Release ReleaseType `json:"release" yaml:"release"`
}

// Match reports whether the rule applies to a commit of the given type and
// scope. An empty rule scope matches any commit scope.
func (r ReleaseRule) Match(commitType, commitScope string) bool {
	if r.Type != commitType {
		return false
	}
	return r.Scope == "" || r.Scope == commitScope
}
