package tui

import (
	"errors"

	"github.com/shastra-labs/shastra-cli/internal/core/ports/driving"
)

// ErrMissingAssistant is returned when the assistant port is not provided.
var ErrMissingAssistant = errors.New("tui: assistant is required")

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Assistant answers scripture questions and reports corpus state.
	Assistant driving.Assistant
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	return nil
}
