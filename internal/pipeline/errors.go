package pipeline

import (
	"fmt"
)

// ConfigError reports invalid pipeline configuration. It is raised before
// any network call so misconfiguration fails the run immediately.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}
