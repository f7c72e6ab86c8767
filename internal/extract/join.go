package extract

import (
	"fmt"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// Join flattens one header with its detail records into output rows: one
// row per detail, every header field copied onto it. Count coercion happens
// here so a malformed count drops only its own row; sibling details in the
// same segment are unaffected.
func Join(seg domain.Segment, header domain.HeaderRecord, details []domain.DetailRecord) ([]domain.Row, []domain.Diagnostic) {
	rows := make([]domain.Row, 0, len(details))
	var diags []domain.Diagnostic

	for _, d := range details {
		var (
			counts [3]int
			err    error
		)
		for i, raw := range []string{d.CountA, d.CountB, d.CountC} {
			if counts[i], err = CoerceCount(raw); err != nil {
				break
			}
		}
		if err != nil {
			diags = append(diags, domain.Diagnostic{
				SegmentIndex: seg.Index,
				Code:         domain.DetailFieldParseError,
				Detail:       fmt.Sprintf("period %q: %v", d.Period, err),
			})
			continue
		}

		rows = append(rows, domain.Row{
			SegmentIndex: seg.Index,
			EntityID:     header.EntityID,
			Name:         header.Name,
			Contact:      header.Contact,
			Period:       d.Period,
			CountA:       counts[0],
			CountB:       counts[1],
			CountC:       counts[2],
		})
	}

	return rows, diags
}
