package domain

import "fmt"

// DiagnosticCode classifies a recoverable extraction failure.
type DiagnosticCode string

const (
	// SegmentHeaderMissing: no line in the segment matched the header-line pattern.
	SegmentHeaderMissing DiagnosticCode = "segment_header_missing"

	// SegmentHeaderMalformed: the header-line pattern matched but the strict
	// header-field pattern failed to capture on the same line.
	SegmentHeaderMalformed DiagnosticCode = "segment_header_malformed"

	// DetailFieldParseError: a detail line matched but a captured count field
	// failed numeric coercion. Only that detail row is dropped.
	DetailFieldParseError DiagnosticCode = "detail_field_parse_error"
)

// Diagnostic records one skipped segment or dropped detail row.
// Diagnostics never abort an extraction; the pipeline always returns
// best-effort rows plus the complete diagnostic list.
type Diagnostic struct {
	// SegmentIndex identifies the segment the condition occurred in.
	SegmentIndex int

	// Code classifies the failure.
	Code DiagnosticCode

	// Detail is a human-readable explanation, including the pattern
	// names involved when the code is SegmentHeaderMalformed.
	Detail string
}

// String renders the diagnostic in "segment N: code: detail" form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("segment %d: %s: %s", d.SegmentIndex, d.Code, d.Detail)
}

// CountByCode tallies diagnostics per code.
func CountByCode(diags []Diagnostic) map[DiagnosticCode]int {
	counts := make(map[DiagnosticCode]int, len(diags))
	for _, d := range diags {
		counts[d.Code]++
	}
	return counts
}
