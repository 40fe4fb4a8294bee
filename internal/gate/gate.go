// Package gate enforces the upstream major version cap on release verdicts.
//
// The gate inspects only major verdicts. Minor, patch, and no-op verdicts
// pass through untouched, as does a major verdict whose next version stays
// at or below the cap. Crossing the cap is the one condition that blocks.
package gate

import (
	"fmt"

	"github.com/grokify/releasegate/internal/progress"
	"github.com/grokify/releasegate/internal/semver"
	"github.com/grokify/releasegate/pkg/model"
)

// CapExceededError reports a major release blocked by the upstream cap.
type CapExceededError struct {
	// NextMajor is the major version the release would have produced.
	NextMajor int

	// LastVersion is the released version the bump was computed from.
	LastVersion string

	// Cap is the resolved ceiling, including which repo and tag set it.
	Cap model.Cap
}

// Error implements the error interface.
func (e *CapExceededError) Error() string {
	scope := e.Cap.Repo.FullName()
	if e.Cap.Branch != "" {
		scope = fmt.Sprintf("%s branch %s", scope, e.Cap.Branch)
	}
	last := e.LastVersion
	if last == "" {
		last = "none"
	}
	return fmt.Sprintf("next major version %d exceeds the cap of %d set by %s (latest tag %s, last released %s)",
		e.NextMajor, e.Cap.Major, scope, e.Cap.Tag, last)
}

// Evaluator applies the cap to a release verdict.
type Evaluator struct {
	reporter *progress.Reporter
}

// New creates a gate evaluator. The reporter may be nil.
func New(reporter *progress.Reporter) *Evaluator {
	return &Evaluator{reporter: reporter}
}

// Evaluate rules on a verdict against the resolved cap. Non-major verdicts
// are never checked. A major verdict is blocked, with a CapExceededError,
// only when the next major version would exceed the cap; reaching the cap
// exactly is allowed.
//
// lastVersion may be empty for a project with no releases yet; the next
// major is then 1. A lastVersion that does not parse as semver disables the
// check for this run rather than failing the release.
func (g *Evaluator) Evaluate(verdict model.ReleaseType, lastVersion string, cap *model.Cap) (model.GateDecision, error) {
	if verdict != model.ReleaseTypeMajor {
		return model.GateDecision{
			Checked: false,
			Allowed: true,
			Reason:  fmt.Sprintf("verdict %s is not subject to the major cap", verdict.OrNone()),
		}, nil
	}

	if cap == nil {
		return model.GateDecision{
			Checked: false,
			Allowed: true,
			Reason:  "no cap resolved",
		}, nil
	}

	nextMajor := 1
	if lastVersion != "" {
		ver, err := semver.Parse(lastVersion)
		if err != nil {
			g.reporter.Infof("last version %q is not semver; skipping the major cap check", lastVersion)
			return model.GateDecision{
				Checked: false,
				Allowed: true,
				Reason:  fmt.Sprintf("last version %q is not semver", lastVersion),
			}, nil
		}
		nextMajor = ver.Major + 1
	}

	if nextMajor > cap.Major {
		capErr := &CapExceededError{
			NextMajor:   nextMajor,
			LastVersion: lastVersion,
			Cap:         *cap,
		}
		return model.GateDecision{
			Checked:   true,
			Allowed:   false,
			NextMajor: nextMajor,
			Cap:       cap,
			Reason:    capErr.Error(),
		}, capErr
	}

	return model.GateDecision{
		Checked:   true,
		Allowed:   true,
		NextMajor: nextMajor,
		Cap:       cap,
		Reason:    fmt.Sprintf("next major version %d is within the cap of %d", nextMajor, cap.Major),
	}, nil
}
