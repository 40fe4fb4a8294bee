package project

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v84/github"

	"github.com/grokify/releasegate/pkg/model"
)

func newTestVersions(t *testing.T, handler http.Handler) *GitHubVersions {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	client.BaseURL = base

	return NewGitHubVersionsWithClient(client, model.RepoRef{Owner: "acme", Name: "widgets"})
}

func TestLatestVersion_PublishedReleaseWins(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 1, "tag_name": "v2.3.4"}`)
	})

	versions := newTestVersions(t, mux)

	got, err := versions.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion failed: %v", err)
	}
	if got != "v2.3.4" {
		t.Errorf("expected v2.3.4, got %q", got)
	}
}

func TestLatestVersion_NonSemverReleaseFallsBackToTags(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 1, "tag_name": "summer-drop"}`)
	})
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"name":"v1.4.0"},{"name":"v1.12.0"},{"name":"nightly"}]`)
	})

	versions := newTestVersions(t, mux)

	got, err := versions.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion failed: %v", err)
	}
	if got != "v1.12.0" {
		t.Errorf("expected v1.12.0, got %q", got)
	}
}

func TestLatestVersion_NoReleasesFallsBackToTags(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"name":"v0.9.0"}]`)
	})

	versions := newTestVersions(t, mux)

	got, err := versions.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion failed: %v", err)
	}
	if got != "v0.9.0" {
		t.Errorf("expected v0.9.0, got %q", got)
	}
}

func TestLatestVersion_NothingReleasedYet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	versions := newTestVersions(t, mux)

	got, err := versions.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty version, got %q", got)
	}
}
