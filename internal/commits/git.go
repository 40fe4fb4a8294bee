package commits

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/grokify/releasegate/pkg/model"
)

// Field and record separators for the git log format below. Unit and record
// separator bytes cannot appear in commit messages, unlike newlines.
const (
	gitLogFormat    = "%H%x1f%s%x1f%b%x1e"
	fieldSeparator  = "\x1f"
	recordSeparator = "\x1e"
)

// GitSource reads commits from a local git checkout.
type GitSource struct {
	dir string
}

// NewGitSource creates a Source reading from the repository at dir. An empty
// dir means the current working directory.
func NewGitSource(dir string) *GitSource {
	return &GitSource{dir: dir}
}

// Commits runs git log and returns the parsed series, oldest first.
func (s *GitSource) Commits(ctx context.Context, since string) ([]model.Commit, error) {
	rangeArg := "HEAD"
	if since != "" {
		rangeArg = since + "..HEAD"
	}

	cmd := exec.CommandContext(ctx, "git", "log", "--reverse", "--format="+gitLogFormat, rangeArg)
	if s.dir != "" {
		cmd.Dir = s.dir
	}

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git log %s failed: %s", rangeArg, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("running git log: %w", err)
	}

	return parseGitLog(string(out)), nil
}

// parseGitLog splits formatted git log output into commits. Records missing
// their separator-delimited fields are dropped rather than guessed at.
func parseGitLog(out string) []model.Commit {
	var commits []model.Commit

	for _, record := range strings.Split(out, recordSeparator) {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		fields := strings.SplitN(record, fieldSeparator, 3)
		if len(fields) != 3 {
			continue
		}

		commits = append(commits, model.Commit{
			SHA:    strings.TrimSpace(fields[0]),
			Header: strings.TrimSpace(fields[1]),
			Body:   trimBlankEdges(fields[2]),
		})
	}
	return commits
}
