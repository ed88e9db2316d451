// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Shastra. It lets AI assistants query the scripture corpus directly.
package mcp

import "errors"

// ErrMissingAssistant is returned when the assistant port is not provided.
var ErrMissingAssistant = errors.New("mcp: assistant is required")
