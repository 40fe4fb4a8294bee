package semver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Version represents a semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
	Prefix     string // "v" or empty
}

var semverRe = regexp.MustCompile(`^v?\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

// IsValid checks if a string is a valid semver tag.
func IsValid(s string) bool {
	return semverRe.MatchString(s)
}

// Parse parses a version string into a Version struct.
func Parse(v string) (*Version, error) {
	ver := &Version{}

	if strings.HasPrefix(v, "v") {
		ver.Prefix = "v"
		v = strings.TrimPrefix(v, "v")
	}

	// Split on '+' for build metadata
	if idx := strings.Index(v, "+"); idx >= 0 {
		ver.Build = v[idx+1:]
		v = v[:idx]
	}

	// Split on '-' for prerelease
	if idx := strings.Index(v, "-"); idx >= 0 {
		ver.Prerelease = v[idx+1:]
		v = v[:idx]
	}

	parts := strings.Split(v, ".")
	if len(parts) < 1 || parts[0] == "" {
		return nil, fmt.Errorf("invalid version format: %s", v)
	}

	var err error

	ver.Major, err = strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid major version: %s", parts[0])
	}

	if len(parts) >= 2 {
		ver.Minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid minor version: %s", parts[1])
		}
	}

	if len(parts) >= 3 {
		ver.Patch, err = strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid patch version: %s", parts[2])
		}
	}

	return ver, nil
}

// String returns the version as a string.
func (v *Version) String() string {
	s := fmt.Sprintf("%s%d.%d.%d", v.Prefix, v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// BumpMajor increments the major version and resets minor and patch.
// Prerelease and build metadata are stripped.
func (v *Version) BumpMajor() *Version {
	return &Version{
		Major:  v.Major + 1,
		Minor:  0,
		Patch:  0,
		Prefix: v.Prefix,
	}
}

// BumpMinor increments the minor version and resets patch.
func (v *Version) BumpMinor() *Version {
	return &Version{
		Major:  v.Major,
		Minor:  v.Minor + 1,
		Patch:  0,
		Prefix: v.Prefix,
	}
}

// BumpPatch increments the patch version.
func (v *Version) BumpPatch() *Version {
	return &Version{
		Major:  v.Major,
		Minor:  v.Minor,
		Patch:  v.Patch + 1,
		Prefix: v.Prefix,
	}
}

// Compare compares two versions by semver precedence.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// Build metadata never affects precedence.
func (v *Version) Compare(other *Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}

	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	// A prerelease version has lower precedence than the normal version.
	if v.Prerelease != "" && other.Prerelease == "" {
		return -1
	}
	if v.Prerelease == "" && other.Prerelease != "" {
		return 1
	}

	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// comparePrerelease compares dot-separated prerelease identifiers:
// numeric identifiers compare numerically and rank below alphanumeric ones,
// alphanumeric identifiers compare in ASCII order, and when all shared
// identifiers are equal the longer identifier list wins.
func comparePrerelease(a, b string) int {
	if a == b {
		return 0
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, an := parseIdentifier(as[i])
		bi, bn := parseIdentifier(bs[i])

		switch {
		case an && bn:
			if ai != bi {
				if ai < bi {
					return -1
				}
				return 1
			}
		case an:
			return -1
		case bn:
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

// parseIdentifier returns the numeric value of a prerelease identifier and
// whether it is purely numeric.
func parseIdentifier(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FindLatest finds the highest semver version from a list of tag names.
// Returns the raw tag string of the winner, or "" when none qualify.
func FindLatest(tags []string) string {
	type parsed struct {
		raw string
		ver *Version
	}

	var versions []parsed

	for _, tag := range tags {
		if !IsValid(tag) {
			continue
		}
		v, err := Parse(tag)
		if err != nil {
			continue
		}
		versions = append(versions, parsed{raw: tag, ver: v})
	}

	if len(versions) == 0 {
		return ""
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].ver.Compare(versions[j].ver) > 0
	})

	return versions[0].raw
}
