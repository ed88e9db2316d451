package mcp

import (
	"github.com/shastra-labs/shastra-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers scripture questions and reports corpus state.
	Assistant driving.Assistant
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	return nil
}
