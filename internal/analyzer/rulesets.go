package analyzer

import (
	"github.com/grokify/releasegate/pkg/model"
)

// Rule set names accepted by GetRuleSet.
const (
	RuleSetConventional = "conventional"
	RuleSetMaintenance  = "maintenance"
)

// Predefined rule sets.
var (
	// RulesConventional follows the standard conventional-commit mapping:
	// features bump minor, fixes and performance work bump patch.
	RulesConventional = model.RuleSet{
		Name: RuleSetConventional,
		Rules: []model.ReleaseRule{
			{Type: "feat", Release: model.ReleaseTypeMinor},
			{Type: "fix", Release: model.ReleaseTypePatch},
			{Type: "perf", Release: model.ReleaseTypePatch},
			{Type: "revert", Release: model.ReleaseTypePatch},
		},
	}

	// RulesMaintenance suits maintenance branches: fixes still release, but
	// feature commits do not trigger anything on their own.
	RulesMaintenance = model.RuleSet{
		Name: RuleSetMaintenance,
		Rules: []model.ReleaseRule{
			{Type: "fix", Release: model.ReleaseTypePatch},
			{Type: "perf", Release: model.ReleaseTypePatch},
			{Type: "revert", Release: model.ReleaseTypePatch},
		},
	}
)

// GetRuleSet returns a predefined rule set by name, or nil if unknown.
func GetRuleSet(name string) *model.RuleSet {
	switch name {
	case RuleSetConventional:
		return &RulesConventional
	case RuleSetMaintenance:
		return &RulesMaintenance
	default:
		return nil
	}
}

// ListRuleSets returns all predefined rule set names.
func ListRuleSets() []string {
	return []string{RuleSetConventional, RuleSetMaintenance}
}
