package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/grokify/releasegate/pkg/model"
)

var testRepo = model.RepoRef{Owner: "acme", Name: "widgets"}

func newTestResolver(t *testing.T, handler http.Handler) *GitHubResolver {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resolver, err := NewGitHubResolver(Config{
		BaseURL:        srv.URL,
		MaxRetries:     1,
		InitialBackoff: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewGitHubResolver failed: %v", err)
	}
	return resolver
}

func writeJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprint(w, body); err != nil {
		t.Errorf("writing response body: %v", err)
	}
}

func tagsHandler(t *testing.T, body string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, body)
	})
	return mux
}

func TestResolveCap_SemverOrderBeatsLexicalOrder(t *testing.T) {
	resolver := newTestResolver(t, tagsHandler(t,
		`[{"name":"v2.0.0","commit":{"sha":"a2"}},{"name":"v10.0.0","commit":{"sha":"a10"}},{"name":"v9.5.1","commit":{"sha":"a9"}}]`))

	res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo})
	if err != nil {
		t.Fatalf("ResolveCap failed: %v", err)
	}

	if res.Cap.Major != 10 {
		t.Errorf("expected cap 10, got %d", res.Cap.Major)
	}
	if res.Cap.Tag != "v10.0.0" {
		t.Errorf("expected winning tag v10.0.0, got %s", res.Cap.Tag)
	}
	if res.Fetched != 3 || res.Candidates != 3 {
		t.Errorf("expected 3 fetched and 3 candidates, got %d and %d", res.Fetched, res.Candidates)
	}
}

func TestResolveCap_NonSemverNamesIgnored(t *testing.T) {
	resolver := newTestResolver(t, tagsHandler(t,
		`[{"name":"release-foo","commit":{"sha":"a1"}},{"name":"v1.0.0","commit":{"sha":"a2"}},{"name":"latest","commit":{"sha":"a3"}}]`))

	res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo})
	if err != nil {
		t.Fatalf("ResolveCap failed: %v", err)
	}

	if res.Cap.Major != 1 {
		t.Errorf("expected cap 1, got %d", res.Cap.Major)
	}
	if res.Fetched != 3 || res.Candidates != 1 {
		t.Errorf("expected 3 fetched and 1 candidate, got %d and %d", res.Fetched, res.Candidates)
	}
}

func TestResolveCap_NoCandidatesYieldsZeroCap(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty listing", `[]`},
		{"no semver names", `[{"name":"nightly","commit":{"sha":"a1"}},{"name":"docs","commit":{"sha":"a2"}}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := newTestResolver(t, tagsHandler(t, tc.body))

			res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo})
			if err != nil {
				t.Fatalf("ResolveCap failed: %v", err)
			}
			if res.Cap.Major != 0 {
				t.Errorf("expected cap 0, got %d", res.Cap.Major)
			}
			if res.Cap.Tag != "" {
				t.Errorf("expected no winning tag, got %s", res.Cap.Tag)
			}
		})
	}
}

func TestResolveCap_SinglePageOnly(t *testing.T) {
	var calls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("expected per_page=100, got %q", got)
		}
		if got := r.URL.Query().Get("page"); got != "" && got != "1" {
			t.Errorf("unexpected request for page %q", got)
		}
		// Advertise a next page; the resolver must not follow it.
		w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/acme/widgets/tags?page=2&per_page=100>; rel="next"`, r.Host))
		writeJSON(t, w, `[{"name":"v4.0.0","commit":{"sha":"a4"}}]`)
	})

	resolver := newTestResolver(t, mux)

	res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo})
	if err != nil {
		t.Fatalf("ResolveCap failed: %v", err)
	}
	if res.Cap.Major != 4 {
		t.Errorf("expected cap 4, got %d", res.Cap.Major)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected exactly 1 listing call, got %d", n)
	}
}

func TestResolveCap_ReleasesSourceSkipsDrafts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/releases", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w,
			`[{"tag_name":"v99.0.0","draft":true},{"tag_name":"v2.0.0","draft":false},{"tag_name":"v10.0.0","draft":false},{"tag_name":""}]`)
	})

	resolver := newTestResolver(t, mux)

	res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo, Source: model.TagSourceReleases})
	if err != nil {
		t.Fatalf("ResolveCap failed: %v", err)
	}

	if res.Cap.Major != 10 {
		t.Errorf("expected cap 10, got %d", res.Cap.Major)
	}
	if res.Cap.Source != model.TagSourceReleases {
		t.Errorf("expected source %s, got %s", model.TagSourceReleases, res.Cap.Source)
	}
	if res.Fetched != 2 {
		t.Errorf("expected 2 usable records, got %d", res.Fetched)
	}
}

func TestResolveCap_BranchScopingSkipsUnreachableTags(t *testing.T) {
	var compareCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w,
			`[{"name":"v1.0.0","commit":{"sha":"a1"}},{"name":"v2.0.0","commit":{"sha":"a2"}},{"name":"v3.0.0","commit":{"sha":"a3"}}]`)
	})
	mux.HandleFunc("/repos/acme/widgets/compare/v3.0.0...maintenance", func(w http.ResponseWriter, r *http.Request) {
		compareCalls.Add(1)
		writeJSON(t, w, `{"status":"diverged","ahead_by":4,"behind_by":9}`)
	})
	mux.HandleFunc("/repos/acme/widgets/compare/v2.0.0...maintenance", func(w http.ResponseWriter, r *http.Request) {
		compareCalls.Add(1)
		writeJSON(t, w, `{"status":"ahead","ahead_by":4,"behind_by":0}`)
	})
	mux.HandleFunc("/repos/acme/widgets/compare/v1.0.0...maintenance", func(w http.ResponseWriter, r *http.Request) {
		compareCalls.Add(1)
		writeJSON(t, w, `{"status":"ahead","ahead_by":12,"behind_by":0}`)
	})

	resolver := newTestResolver(t, mux)

	res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo, Branch: "maintenance"})
	if err != nil {
		t.Fatalf("ResolveCap failed: %v", err)
	}

	if res.Cap.Major != 2 {
		t.Errorf("expected cap 2, got %d", res.Cap.Major)
	}
	if res.Cap.Tag != "v2.0.0" {
		t.Errorf("expected winning tag v2.0.0, got %s", res.Cap.Tag)
	}
	if len(res.Unreachable) != 1 || res.Unreachable[0] != "v3.0.0" {
		t.Errorf("expected unreachable [v3.0.0], got %v", res.Unreachable)
	}
	// The walk stops at the first reachable candidate; v1.0.0 is never compared.
	if n := compareCalls.Load(); n != 2 {
		t.Errorf("expected 2 compare calls, got %d", n)
	}
}

func TestResolveCap_IdenticalStatusQualifies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `[{"name":"v5.0.0","commit":{"sha":"a5"}}]`)
	})
	mux.HandleFunc("/repos/acme/widgets/compare/v5.0.0...release-5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"status":"identical","ahead_by":0,"behind_by":0}`)
	})

	resolver := newTestResolver(t, mux)

	res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo, Branch: "release-5"})
	if err != nil {
		t.Fatalf("ResolveCap failed: %v", err)
	}
	if res.Cap.Major != 5 {
		t.Errorf("expected cap 5, got %d", res.Cap.Major)
	}
}

func TestResolveCap_CompareFailureSkipsCandidateOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w,
			`[{"name":"v3.0.0","commit":{"sha":"a3"}},{"name":"v2.0.0","commit":{"sha":"a2"}}]`)
	})
	mux.HandleFunc("/repos/acme/widgets/compare/v3.0.0...main", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(t, w, `{"message":"Not Found"}`)
	})
	mux.HandleFunc("/repos/acme/widgets/compare/v2.0.0...main", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"status":"ahead","ahead_by":2,"behind_by":0}`)
	})

	resolver := newTestResolver(t, mux)

	res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo, Branch: "main"})
	if err != nil {
		t.Fatalf("expected the failed comparison to be skipped, got error: %v", err)
	}

	if res.Cap.Major != 2 {
		t.Errorf("expected cap 2, got %d", res.Cap.Major)
	}
	if len(res.Unreachable) != 1 || res.Unreachable[0] != "v3.0.0" {
		t.Errorf("expected unreachable [v3.0.0], got %v", res.Unreachable)
	}
}

func TestResolveCap_NoReachableCandidateYieldsZeroCap(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `[{"name":"v2.0.0","commit":{"sha":"a2"}}]`)
	})
	mux.HandleFunc("/repos/acme/widgets/compare/v2.0.0...old", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"status":"behind","ahead_by":0,"behind_by":7}`)
	})

	resolver := newTestResolver(t, mux)

	res, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo, Branch: "old"})
	if err != nil {
		t.Fatalf("ResolveCap failed: %v", err)
	}
	if res.Cap.Major != 0 {
		t.Errorf("expected cap 0, got %d", res.Cap.Major)
	}
	if len(res.Unreachable) != 1 {
		t.Errorf("expected 1 unreachable candidate, got %v", res.Unreachable)
	}
}

func TestResolveCap_ListingErrorCategories(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		header   map[string]string
		category ErrorCategory
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"message":"Bad credentials"}`,
			category: CategoryUnauthorized,
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     `{"message":"Must have push access"}`,
			category: CategoryForbidden,
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"message":"Not Found"}`,
			category: CategoryNotFound,
		},
		{
			name:   "rate limited",
			status: http.StatusForbidden,
			body:   `{"message":"API rate limit exceeded for 1.2.3.4"}`,
			header: map[string]string{
				"X-RateLimit-Limit":     "60",
				"X-RateLimit-Remaining": "0",
				"X-RateLimit-Reset":     "1735689600",
			},
			category: CategoryRateLimited,
		},
		{
			name:     "other status",
			status:   http.StatusUnprocessableEntity,
			body:     `{"message":"Validation Failed"}`,
			category: CategoryOther,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tc.header {
					w.Header().Set(k, v)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			})

			resolver := newTestResolver(t, mux)

			_, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo})
			if err == nil {
				t.Fatal("expected an error")
			}

			var dataErr *DataError
			if !errors.As(err, &dataErr) {
				t.Fatalf("expected a DataError, got %T: %v", err, err)
			}
			if dataErr.Category != tc.category {
				t.Errorf("expected category %s, got %s", tc.category, dataErr.Category)
			}
		})
	}
}

func TestResolveCap_MalformedPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{]`)
	})

	resolver := newTestResolver(t, mux)

	_, err := resolver.ResolveCap(context.Background(), Request{Repo: testRepo})
	if err == nil {
		t.Fatal("expected an error")
	}

	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected a DataError, got %T: %v", err, err)
	}
	if dataErr.Category != CategoryBadPayload {
		t.Errorf("expected category %s, got %s", CategoryBadPayload, dataErr.Category)
	}
}

func TestResolveCap_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	resolver, err := NewGitHubResolver(Config{
		BaseURL:        url,
		MaxRetries:     1,
		InitialBackoff: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewGitHubResolver failed: %v", err)
	}

	_, err = resolver.ResolveCap(context.Background(), Request{Repo: testRepo})
	if err == nil {
		t.Fatal("expected an error")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected a FetchError, got %T: %v", err, err)
	}
	if fetchErr.Repo != testRepo {
		t.Errorf("expected repo %s, got %s", testRepo.FullName(), fetchErr.Repo.FullName())
	}
}
