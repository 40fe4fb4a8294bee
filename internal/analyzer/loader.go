package analyzer

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grokify/releasegate/pkg/model"
)

// LoadRuleSetFromFile loads a rule set from a YAML file.
func LoadRuleSetFromFile(path string) (*model.RuleSet, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set file: %w", err)
	}
	return LoadRuleSetFromBytes(data)
}

// LoadRuleSetFromBytes loads a rule set from YAML bytes.
func LoadRuleSetFromBytes(data []byte) (*model.RuleSet, error) {
	var rules model.RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rule set: %w", err)
	}
	if err := validateRuleSet(&rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

// validateRuleSet rejects rules with missing types or unknown release values.
func validateRuleSet(rules *model.RuleSet) error {
	if len(rules.Rules) == 0 {
		return fmt.Errorf("rule set %q has no rules", rules.Name)
	}
	for i, rule := range rules.Rules {
		if rule.Type == "" {
			return fmt.Errorf("rule %d has no commit type", i)
		}
		if _, ok := model.ParseReleaseType(string(rule.Release)); !ok {
			return fmt.Errorf("rule %d for type %q has unknown release %q", i, rule.Type, rule.Release)
		}
	}
	return nil
}
