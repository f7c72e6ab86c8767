package extract

import (
	"fmt"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// ParseDetails extracts every per-period detail record from a segment.
//
// Lines matching the coarse detail_line pattern are captured with the strict
// detail_fields pattern, in the order they appear in the segment. No sorting
// happens here: consumers that want chronological order sort downstream.
//
// Zero matching lines is valid and yields no records and no diagnostics; an
// entity with no reporting history is not an error. A line that matches
// detail_line but defeats detail_fields drops only itself, recorded as a
// DetailFieldParseError.
func ParseDetails(seg domain.Segment, rules *domain.Rules) ([]domain.DetailRecord, []domain.Diagnostic) {
	var (
		records []domain.DetailRecord
		diags   []domain.Diagnostic
	)

	for _, line := range seg.Lines() {
		if !rules.DetailLine.MatchString(line) {
			continue
		}

		groups := rules.DetailFields.FindStringSubmatch(line)
		if groups == nil {
			diags = append(diags, domain.Diagnostic{
				SegmentIndex: seg.Index,
				Code:         domain.DetailFieldParseError,
				Detail: fmt.Sprintf("detail_line matched but detail_fields %q did not capture: %q",
					rules.DetailFields, line),
			})
			continue
		}

		records = append(records, domain.DetailRecord{
			Period: groups[1],
			CountA: groups[2],
			CountB: groups[3],
			CountC: groups[4],
		})
	}

	return records, diags
}
