package model

// ReleaseType is the verdict of commit classification: the kind of release
// the analyzed commits call for.
type ReleaseType string

const (
	ReleaseTypeMajor ReleaseType = "major"
	ReleaseTypeMinor ReleaseType = "minor"
	ReleaseTypePatch ReleaseType = "patch"
	ReleaseTypeNone  ReleaseType = "none"
)

// rank orders release types so the highest verdict across commits wins.
func (t ReleaseType) rank() int {
	switch t {
	case ReleaseTypeMajor:
		return 3
	case ReleaseTypeMinor:
		return 2
	case ReleaseTypePatch:
		return 1
	default:
		return 0
	}
}

// IsNone reports whether the verdict calls for no release.
func (t ReleaseType) IsNone() bool {
	return t == ReleaseTypeNone || t == ""
}

// OrNone normalizes the zero value to ReleaseTypeNone for display.
func (t ReleaseType) OrNone() ReleaseType {
	if t == "" {
		return ReleaseTypeNone
	}
	return t
}

// MaxReleaseType returns the higher-precedence of two release types.
func MaxReleaseType(a, b ReleaseType) ReleaseType {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// ParseReleaseType parses a release type from configuration input.
// Empty input and "none" both mean no release.
func ParseReleaseType(s string) (ReleaseType, bool) {
	switch ReleaseType(s) {
	case ReleaseTypeMajor, ReleaseTypeMinor, ReleaseTypePatch, ReleaseTypeNone:
		return ReleaseType(s), true
	case "":
		return ReleaseTypeNone, true
	default:
		return ReleaseTypeNone, false
	}
}

// Commit is one entry in the ordered commit list handed to the classifier.
type Commit struct {
	SHA    string `json:"sha,omitempty"`
	Header string `json:"header"`
	Body   string `json:"body,omitempty"`
}

// TagSource identifies which upstream listing a tag candidate came from.
type TagSource string

const (
	TagSourceTags     TagSource = "tags"
	TagSourceReleases TagSource = "releases"
)

// TagCandidate is a semver-parseable tag name fetched from the upstream
// repository, with its derived major version.
type TagCandidate struct {
	Name   string    `json:"name"`
	SHA    string    `json:"sha,omitempty"`
	Major  int       `json:"major"`
	Source TagSource `json:"source"`
}

// Cap is the resolved upstream major version ceiling with its provenance.
// Major is 0 when the upstream offered no qualifying tag.
type Cap struct {
	Major  int       `json:"major"`
	Repo   RepoRef   `json:"repo"`
	Branch string    `json:"branch,omitempty"`
	Source TagSource `json:"source"`
	Tag    string    `json:"tag,omitempty"`
}
