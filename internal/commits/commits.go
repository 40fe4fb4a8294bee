// Package commits provides the commit series for analysis, either from a
// local git checkout or from the GitHub API.
package commits

import (
	"context"

	"github.com/grokify/releasegate/pkg/model"
)

// Source lists the commits to analyze, oldest first. since names the last
// released tag; commits up to and including it are excluded. An empty since
// means the project has no releases yet and the full available history, up
// to the source's own listing limit, is returned.
type Source interface {
	Commits(ctx context.Context, since string) ([]model.Commit, error)
}

// splitMessage separates a full commit message into its header line and body.
func splitMessage(message string) (string, string) {
	for i := 0; i < len(message); i++ {
		if message[i] == '\n' {
			return message[:i], trimBlankEdges(message[i+1:])
		}
	}
	return message, ""
}

// trimBlankEdges strips leading and trailing blank lines from a body.
func trimBlankEdges(s string) string {
	start := 0
	for start < len(s) && (s[start] == '\n' || s[start] == '\r') {
		start++
	}
	end := len(s)
	for end > start && (s[end-1] == '\n' || s[end-1] == '\r' || s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
