package domain

import "strings"

// Segment is one entity's contiguous text block between delimiter matches.
// Segment 0 is the preamble (text before the first delimiter match); it is
// kept for inspectability but never produces rows.
type Segment struct {
	// Index is the ordinal position in the document, starting at 0.
	Index int

	// Text is the raw segment content, delimiter excluded.
	Text string
}

// Lines returns the segment's text split into lines.
// A trailing newline does not produce an empty final line.
func (s Segment) Lines() []string {
	text := strings.TrimSuffix(s.Text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// IsPreamble reports whether this is the discardable leading segment.
func (s Segment) IsPreamble() bool {
	return s.Index == 0
}
