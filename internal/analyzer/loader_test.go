package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grokify/releasegate/pkg/model"
)

func TestLoadRuleSetFromBytes(t *testing.T) {
	data := []byte(`name: custom
rules:
  - type: feat
    release: minor
  - type: fix
    scope: deps
    release: none
  - type: fix
    release: patch
`)

	rules, err := LoadRuleSetFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "custom", rules.Name)
	require.Len(t, rules.Rules, 3)
	assert.Equal(t, "feat", rules.Rules[0].Type)
	assert.Equal(t, model.ReleaseTypeMinor, rules.Rules[0].Release)
	assert.Equal(t, "deps", rules.Rules[1].Scope)
	assert.Equal(t, model.ReleaseTypeNone, rules.Rules[1].Release)
}

func TestLoadRuleSetFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "rules: ["},
		{"no rules", "name: empty\nrules: []\n"},
		{"missing type", "rules:\n  - release: patch\n"},
		{"unknown release", "rules:\n  - type: feat\n    release: gigantic\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRuleSetFromBytes([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadRuleSetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := []byte("name: from-file\nrules:\n  - type: fix\n    release: patch\n")
	require.NoError(t, os.WriteFile(path, content, 0600))

	rules, err := LoadRuleSetFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", rules.Name)

	_, err = LoadRuleSetFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
