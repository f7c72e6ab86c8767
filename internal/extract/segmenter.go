package extract

import (
	"regexp"
	"strings"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// SplitResult holds the outcome of a delimiter split. Delimiter matches are
// retained so the split is lossless: Rejoin reproduces the input exactly.
type SplitResult struct {
	// Segments are the entity blocks. Segments[0] is always the preamble
	// (possibly empty); it never produces rows.
	Segments []domain.Segment

	// delimiters are the matched boundary texts, in order. delimiters[i]
	// sits between Segments[i] and Segments[i+1].
	delimiters []string
}

// Split divides a document on every match of the delimiter pattern.
// Each match is a consumed boundary, included in neither adjacent segment.
// Empty trailing segments are dropped; their delimiters are kept so the
// split stays lossless.
func Split(document string, delimiter *regexp.Regexp) SplitResult {
	matches := delimiter.FindAllStringIndex(document, -1)

	segments := make([]domain.Segment, 0, len(matches)+1)
	delimiters := make([]string, 0, len(matches))

	prev := 0
	for _, m := range matches {
		segments = append(segments, domain.Segment{Index: len(segments), Text: document[prev:m[0]]})
		delimiters = append(delimiters, document[m[0]:m[1]])
		prev = m[1]
	}
	segments = append(segments, domain.Segment{Index: len(segments), Text: document[prev:]})

	// Drop empty trailing segments. The preamble stays even when empty.
	for len(segments) > 1 && segments[len(segments)-1].Text == "" {
		segments = segments[:len(segments)-1]
	}

	return SplitResult{Segments: segments, delimiters: delimiters}
}

// Rejoin reconstructs the original document from the split.
func (r SplitResult) Rejoin() string {
	var b strings.Builder
	for i, seg := range r.Segments {
		if i > 0 {
			b.WriteString(r.delimiters[i-1])
		}
		b.WriteString(seg.Text)
	}
	// Delimiters that preceded dropped empty trailing segments.
	for i := len(r.Segments) - 1; i < len(r.delimiters); i++ {
		b.WriteString(r.delimiters[i])
	}
	return b.String()
}

// Entities returns the segments that may produce rows: everything after
// the preamble.
func (r SplitResult) Entities() []domain.Segment {
	if len(r.Segments) <= 1 {
		return nil
	}
	return r.Segments[1:]
}
