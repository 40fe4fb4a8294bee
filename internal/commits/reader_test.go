package commits

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource_FlipsToOldestFirst(t *testing.T) {
	log := "newest\x1ffeat: latest work\x1f\x1e" +
		"middle\x1ffix: a bug\x1fWith a body.\n\x1e" +
		"oldest\x1fchore: initial commit\x1f\x1e"

	path := filepath.Join(t.TempDir(), "commits.log")
	if err := os.WriteFile(path, []byte(log), 0600); err != nil {
		t.Fatalf("writing log file: %v", err)
	}

	commits, err := NewFileSource(path).Commits(context.Background(), "v1.0.0")
	if err != nil {
		t.Fatalf("Commits failed: %v", err)
	}

	if len(commits) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(commits))
	}
	if commits[0].SHA != "oldest" {
		t.Errorf("expected the oldest commit first, got %s", commits[0].SHA)
	}
	if commits[2].SHA != "newest" {
		t.Errorf("expected the newest commit last, got %s", commits[2].SHA)
	}
	if commits[1].Body != "With a body." {
		t.Errorf("unexpected middle body: %q", commits[1].Body)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.log")).Commits(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
