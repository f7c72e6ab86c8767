// Package domain defines the core business entities for reportex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types of report extraction:
//
//   - Segment: One entity's contiguous text block between delimiters
//   - HeaderRecord: Entity-level fields extracted once per segment
//   - DetailRecord: A repeating per-period record within a segment
//   - Row: The flattened join of a header with one detail
//   - RuleSet: The configured patterns that drive an extraction
//   - Diagnostic: A recoverable-error record for a skipped segment or row
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
