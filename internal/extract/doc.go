// Package extract implements the report extraction engine: delimiter
// segmentation, header and detail parsing, field cleaning and row assembly.
//
// The pipeline is a straight line per segment with no shared mutable state,
// so segments are processed independently and may run on a worker pool.
// All failures are local: a malformed segment or detail row is dropped and
// recorded as a domain.Diagnostic, never aborting the extraction.
package extract
