// Package upstream resolves the major-version ceiling imposed by an upstream
// repository's published tags.
//
// The resolver fetches one page of the most recent tag or release records,
// keeps the semver-valid names, orders them by descending semver precedence,
// and reports the major version of the highest candidate. When a branch is
// given, candidates are additionally filtered to those the branch head has
// already incorporated. An upstream with no qualifying tags resolves to a cap
// of zero, which blocks every major bump until the upstream catches up.
package upstream

import (
	"context"

	"github.com/grokify/releasegate/pkg/model"
)

// Request identifies the upstream repository to resolve a cap for.
type Request struct {
	// Repo is the upstream repository, required.
	Repo model.RepoRef

	// Branch optionally scopes candidates to tags reachable from the branch
	// head. Empty means no reachability filtering.
	Branch string

	// Source selects the listing endpoint. Defaults to model.TagSourceTags.
	Source model.TagSource
}

// Resolution is the outcome of one cap resolution.
type Resolution struct {
	// Cap is the resolved ceiling with provenance. Cap.Major is 0 and
	// Cap.Tag empty when no candidate qualified.
	Cap model.Cap

	// Fetched is the number of records the listing returned, Candidates the
	// subset that parsed as semver.
	Fetched    int
	Candidates int

	// Unreachable lists candidates that outranked the winner but were not
	// reachable from the requested branch, highest first.
	Unreachable []string
}

// Resolver resolves the upstream major version cap.
type Resolver interface {
	// ResolveCap resolves the cap for the requested repository. It is
	// idempotent and side-effect-free; callers may invoke it once per run
	// and reuse the result. A cap of zero is a successful resolution, not
	// an error.
	ResolveCap(ctx context.Context, req Request) (*Resolution, error)
}
