package model

import "time"

// VerifyResult contains the outcome of the verify-conditions stage.
type VerifyResult struct {
	Timestamp time.Time `json:"timestamp"`
	Cap       Cap       `json:"cap"`

	// Fetched is the number of usable records returned by the listing call,
	// Candidates the subset that parsed as semver.
	Fetched    int `json:"fetched"`
	Candidates int `json:"candidates"`

	// Unreachable lists candidates that outranked the winner but were not
	// reachable from the target branch. Empty for unscoped resolution.
	Unreachable []string `json:"unreachable,omitempty"`
}

// AnalyzeResult contains the outcome of the analyze-commits stage.
type AnalyzeResult struct {
	Timestamp   time.Time    `json:"timestamp"`
	Commits     int          `json:"commits"`
	Verdict     ReleaseType  `json:"verdict"`
	LastVersion string       `json:"lastVersion,omitempty"`
	NextVersion string       `json:"nextVersion,omitempty"`
	Gate        GateDecision `json:"gate"`
}

// GateDecision records whether the major-cap gate was applied and how it ruled.
type GateDecision struct {
	// Checked is true only when the verdict was major and a candidate next
	// version could be computed; non-major verdicts bypass the gate.
	Checked   bool   `json:"checked"`
	Allowed   bool   `json:"allowed"`
	NextMajor int    `json:"nextMajor,omitempty"`
	Cap       *Cap   `json:"cap,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
