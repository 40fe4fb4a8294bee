// Package analyzer turns an ordered series of commits into a release verdict.
//
// Classification is pluggable: the pipeline only depends on the Classifier
// interface, and the conventional-commit implementation here is the default
// collaborator, not the only possible one.
package analyzer

import (
	"github.com/grokify/releasegate/pkg/model"
)

// Classifier maps a commit series to the release type it calls for.
// Implementations never error: a commit that fits no rule simply contributes
// nothing to the verdict, and an empty series yields ReleaseTypeNone.
type Classifier interface {
	Classify(commits []model.Commit) model.ReleaseType
}
