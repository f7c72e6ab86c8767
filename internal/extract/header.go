package extract

import (
	"fmt"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// ParseHeader extracts the entity-level fields from a segment.
//
// The first line matching the coarse header_line pattern is selected, then
// the strict header_fields pattern is applied to that single line to capture
// id, name and contact. Two failure modes, both local to the segment:
//
//   - no line matches header_line: SegmentHeaderMissing
//   - header_line matched but header_fields did not capture on the same
//     line: SegmentHeaderMalformed, reported with both pattern names so
//     the disagreement is diagnosable
//
// On failure the returned header is nil and the diagnostic non-nil.
// Fields are returned raw; the pipeline applies cleaning.
func ParseHeader(seg domain.Segment, rules *domain.Rules) (*domain.HeaderRecord, *domain.Diagnostic) {
	for _, line := range seg.Lines() {
		if !rules.HeaderLine.MatchString(line) {
			continue
		}

		groups := rules.HeaderFields.FindStringSubmatch(line)
		if groups == nil {
			return nil, &domain.Diagnostic{
				SegmentIndex: seg.Index,
				Code:         domain.SegmentHeaderMalformed,
				Detail: fmt.Sprintf("header_line %q matched but header_fields %q did not capture: %q",
					rules.HeaderLine, rules.HeaderFields, line),
			}
		}

		return &domain.HeaderRecord{
			EntityID: groups[1],
			Name:     groups[2],
			Contact:  groups[3],
		}, nil
	}

	return nil, &domain.Diagnostic{
		SegmentIndex: seg.Index,
		Code:         domain.SegmentHeaderMissing,
		Detail:       fmt.Sprintf("no line matched header_line %q", rules.HeaderLine),
	}
}
