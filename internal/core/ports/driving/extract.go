package driving

import (
	"context"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// ExtractRequest describes one extraction pass.
type ExtractRequest struct {
	// Document is the full report text, already in memory. Fetching and
	// reading are the caller's concern; the core never does I/O on input.
	Document string

	// Source labels where the document came from, for the run record.
	Source string

	// Profile names the stored rule profile to use. Ignored when Rules
	// is set directly.
	Profile string

	// Rules overrides profile lookup with an explicit rule set.
	Rules *domain.RuleSet

	// Workers is the segment worker count; <=1 means sequential.
	Workers int

	// Persist stores the run, rows and diagnostics when true.
	Persist bool
}

// ExtractReport is the outcome of one extraction pass.
type ExtractReport struct {
	// Run summarises the pass. Run.ID is set even when not persisted.
	Run domain.Run

	// Rows are the output rows in original segment order.
	Rows []domain.Row

	// Diagnostics describe every skipped segment and dropped row.
	Diagnostics []domain.Diagnostic
}

// ExtractService runs report extractions.
type ExtractService interface {
	// Extract parses a document into rows. Malformed segments and rows
	// surface as diagnostics on the report, never as an error; the error
	// is reserved for configuration and storage failures.
	Extract(ctx context.Context, req ExtractRequest) (*ExtractReport, error)
}
