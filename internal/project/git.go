package project

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/grokify/releasegate/internal/semver"
)

// GitVersions reads the project's release state from local git tags.
type GitVersions struct {
	dir string
}

// NewGitVersions creates a VersionSource reading tags from the repository at
// dir. An empty dir means the current working directory.
func NewGitVersions(dir string) *GitVersions {
	return &GitVersions{dir: dir}
}

// LatestVersion returns the highest semver tag in the checkout, or an empty
// string when no tag qualifies.
func (p *GitVersions) LatestVersion(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "tag", "--list")
	if p.dir != "" {
		cmd.Dir = p.dir
	}

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git tag --list failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("running git tag: %w", err)
	}

	return semver.FindLatest(splitLines(string(out))), nil
}

// splitLines splits command output into trimmed, non-empty lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
