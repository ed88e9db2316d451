// Package driving provides interfaces consumed by user-facing adapters
// (primary/inbound ports).
package driving
