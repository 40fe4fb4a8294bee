// Package project determines the analyzed project's own release state, most
// importantly the last released version the next release is computed from.
package project

import (
	"context"
)

// VersionSource reports the project's latest released version. An empty
// string with a nil error means the project has no releases yet; callers
// treat that as starting from zero.
type VersionSource interface {
	LatestVersion(ctx context.Context) (string, error)
}

// Static is a caller-supplied version, bypassing discovery.
type Static string

// LatestVersion returns the fixed version.
func (s Static) LatestVersion(ctx context.Context) (string, error) {
	return string(s), nil
}
