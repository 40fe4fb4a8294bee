package pipeline

import (
	"sync"

	"github.com/grokify/releasegate/pkg/model"
)

// RunContext carries state between pipeline steps of one run. The verify
// step stores the resolved cap so the analyze step does not resolve again.
// Safe for concurrent use.
type RunContext struct {
	mu  sync.Mutex
	cap *model.Cap
}

// NewRunContext creates an empty run context.
func NewRunContext() *RunContext {
	return &RunContext{}
}

// SetCap stores the resolved cap for later steps.
func (rc *RunContext) SetCap(c model.Cap) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cap = &c
}

// ResolvedCap returns the cap stored by an earlier step, or nil when no
// step has resolved one in this run.
func (rc *RunContext) ResolvedCap() *model.Cap {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.cap == nil {
		return nil
	}
	c := *rc.cap
	return &c
}
