// Package progress reports informational resolution and gate events to a
// writer, normally stderr, so pipeline output on stdout stays machine-clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter writes informational lines when enabled. A nil Reporter discards
// everything, so callers never need to guard their calls.
type Reporter struct {
	mu      sync.Mutex
	writer  io.Writer
	enabled bool
}

// Config configures a Reporter.
type Config struct {
	// Writer is where lines are written. Default is os.Stderr.
	Writer io.Writer

	// Enabled controls whether anything is written.
	Enabled bool
}

// New creates a new Reporter.
func New(cfg Config) *Reporter {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	return &Reporter{
		writer:  cfg.Writer,
		enabled: cfg.Enabled,
	}
}

// Infof writes a single informational line.
func (r *Reporter) Infof(format string, args ...any) {
	if r == nil || !r.enabled {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.writer, format+"\n", args...)
}
