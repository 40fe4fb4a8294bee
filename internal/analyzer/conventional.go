package analyzer

import (
	"regexp"
	"strings"

	"github.com/grokify/releasegate/pkg/model"
)

// headerRe matches a conventional commit header: a type, an optional
// parenthesized scope, an optional breaking-change marker, then the subject.
var headerRe = regexp.MustCompile(`^([a-zA-Z]+)(?:\(([^)]*)\))?(!)?:\s*(.+)$`)

// breakingTokens start a footer line that marks a breaking change.
var breakingTokens = []string{"BREAKING CHANGE:", "BREAKING-CHANGE:"}

// Conventional classifies conventional commits against a rule set.
type Conventional struct {
	rules *model.RuleSet
}

// NewConventional creates a classifier for the given rule set. A nil rule
// set selects the standard conventional rules.
func NewConventional(rules *model.RuleSet) *Conventional {
	if rules == nil {
		rules = GetRuleSet(RuleSetConventional)
	}
	return &Conventional{rules: rules}
}

// Classify returns the highest release type any commit in the series calls
// for. Commit order does not matter to the verdict.
func (c *Conventional) Classify(commits []model.Commit) model.ReleaseType {
	verdict := model.ReleaseTypeNone
	for _, commit := range commits {
		verdict = model.MaxReleaseType(verdict, c.classifyCommit(commit))
		if verdict == model.ReleaseTypeMajor {
			break
		}
	}
	return verdict
}

// classifyCommit classifies a single commit. A commit whose header is not in
// conventional form contributes nothing; a breaking marker, in the header or
// as a body footer, outranks every rule.
func (c *Conventional) classifyCommit(commit model.Commit) model.ReleaseType {
	m := headerRe.FindStringSubmatch(commit.Header)
	if m == nil {
		return model.ReleaseTypeNone
	}

	commitType := strings.ToLower(m[1])
	commitScope := m[2]
	bang := m[3] != ""

	if bang || hasBreakingFooter(commit.Body) {
		return model.ReleaseTypeMajor
	}

	for _, rule := range c.rules.Rules {
		if rule.Match(commitType, commitScope) {
			return rule.Release
		}
	}
	return model.ReleaseTypeNone
}

// hasBreakingFooter reports whether any body line starts with a
// breaking-change footer token.
func hasBreakingFooter(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		for _, token := range breakingTokens {
			if strings.HasPrefix(line, token) {
				return true
			}
		}
	}
	return false
}
