package upstream

import (
	"sort"

	"github.com/grokify/releasegate/internal/semver"
	"github.com/grokify/releasegate/pkg/model"
)

// candidate pairs a fetched tag with its parsed version for ordering.
type candidate struct {
	model.TagCandidate
	ver *semver.Version
}

// collectCandidates keeps the semver-valid entries of a fetched listing and
// sorts them by descending semver precedence. Non-semver names are dropped
// silently: mixed tag namespaces are normal, not an error. Entries that
// normalize to the same version stay distinct, listing order preserved, so
// the first in sorted order wins for cap purposes.
func collectCandidates(fetched []model.TagCandidate) []candidate {
	var out []candidate

	for _, tc := range fetched {
		if !semver.IsValid(tc.Name) {
			continue
		}
		v, err := semver.Parse(tc.Name)
		if err != nil {
			continue
		}
		tc.Major = v.Major
		out = append(out, candidate{TagCandidate: tc, ver: v})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ver.Compare(out[j].ver) > 0
	})

	return out
}
