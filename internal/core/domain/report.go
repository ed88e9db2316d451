package domain

// FileFailure records one source file that could not be parsed.
type FileFailure struct {
	// File is the source file name.
	File string

	// Reason describes the parse failure.
	Reason string
}

// LoadReport aggregates per-file outcomes of a corpus load. Failures are
// contained per file rather than aborting the batch; the report lets the
// caller distinguish "all files malformed" from a genuinely empty corpus.
type LoadReport struct {
	// FilesLoaded is the number of files that produced units.
	FilesLoaded int

	// UnitCount is the total number of units produced.
	UnitCount int

	// Failures lists files that were skipped.
	Failures []FileFailure
}
