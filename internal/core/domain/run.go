package domain

import "time"

// Run records one extraction pass over one document.
type Run struct {
	// ID is the unique identifier for the run.
	ID string

	// Source is where the document came from (file path or "-" for stdin).
	Source string

	// RuleSet is the name of the rule profile used.
	RuleSet string

	// StartedAt is when the extraction began.
	StartedAt time.Time

	// Duration is how long the extraction took.
	Duration time.Duration

	// SegmentCount is the number of entity segments seen (preamble excluded).
	SegmentCount int

	// RowCount is the number of output rows produced.
	RowCount int

	// DiagnosticCount is the number of skipped segments and dropped rows.
	DiagnosticCount int
}
