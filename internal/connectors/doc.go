// Package connectors provides implementations of the CorpusSource
// interface for the supported scripture sources. Each connector knows
// how to fetch corpus JSON files from a specific location (local
// filesystem, GitHub repository, Google Drive folder).
package connectors
