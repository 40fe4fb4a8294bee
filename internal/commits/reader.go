package commits

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/grokify/releasegate/pkg/model"
)

// FileSource reads pre-captured git log output, for CI steps that pipe the
// log into the gate instead of granting it a checkout. The expected capture
// command is
//
//	git log --format='%H%x1f%s%x1f%b%x1e'
//
// which lists newest first; the source flips the records to oldest first.
type FileSource struct {
	path string
}

// NewFileSource creates a Source reading from path. "-" means stdin.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Commits parses the captured log. The capture fixes the commit range, so
// since is ignored here.
func (s *FileSource) Commits(ctx context.Context, since string) ([]model.Commit, error) {
	var data []byte
	var err error

	if s.path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(s.path)) // #nosec G304
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read commit log: %w", err)
	}

	commits := parseGitLog(string(data))
	reverseCommits(commits)
	return commits, nil
}

func reverseCommits(commits []model.Commit) {
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
}
