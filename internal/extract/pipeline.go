package extract

import (
	"context"
	"strings"
	"sync"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// DefaultWorkers is the worker count used when none is configured.
// Segments are independent, but one worker keeps small extractions cheap.
const DefaultWorkers = 1

// Pipeline runs the full extraction over one document:
// Split -> ParseHeader/ParseDetails -> Join, with field cleaning applied
// to the header name. Each segment is a pure function of its own text, so
// the pipeline may fan segments out to a worker pool; results are merged
// back in original segment order either way.
type Pipeline struct {
	rules   *domain.Rules
	cleaner *Cleaner
	workers int
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithWorkers sets the number of concurrent segment workers.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a pipeline for the given compiled rules.
func New(rules *domain.Rules, opts ...Option) *Pipeline {
	p := &Pipeline{
		rules:   rules,
		cleaner: NewCleaner(rules.Clean),
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the best-effort outcome of one extraction pass.
type Result struct {
	// Rows are the output rows, in original segment order.
	Rows []domain.Row

	// Diagnostics describe every skipped segment and dropped detail row.
	Diagnostics []domain.Diagnostic

	// SegmentCount is the number of entity segments seen (preamble excluded).
	SegmentCount int
}

// segmentResult is the per-segment slot results are merged from.
type segmentResult struct {
	rows  []domain.Row
	diags []domain.Diagnostic
}

// Extract runs the pipeline over a document. It only returns an error when
// the context is cancelled; extraction failures are never fatal and surface
// as diagnostics on the result.
func (p *Pipeline) Extract(ctx context.Context, document string) (*Result, error) {
	split := Split(document, p.rules.Delimiter)
	entities := split.Entities()

	results := make([]segmentResult, len(entities))

	if p.workers <= 1 || len(entities) < 2 {
		for i, seg := range entities {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = p.processSegment(seg)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < p.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					if ctx.Err() != nil {
						continue
					}
					results[i] = p.processSegment(entities[i])
				}
			}()
		}
		for i := range entities {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	out := &Result{SegmentCount: len(entities)}
	for _, r := range results {
		out.Rows = append(out.Rows, r.rows...)
		out.Diagnostics = append(out.Diagnostics, r.diags...)
	}
	return out, nil
}

// processSegment runs the straight-line per-segment pipeline.
func (p *Pipeline) processSegment(seg domain.Segment) segmentResult {
	header, diag := ParseHeader(seg, p.rules)
	if diag != nil {
		return segmentResult{diags: []domain.Diagnostic{*diag}}
	}

	header.EntityID = strings.TrimSpace(header.EntityID)
	header.Name = p.cleaner.Clean(header.Name)
	header.Contact = strings.TrimSpace(header.Contact)

	details, diags := ParseDetails(seg, p.rules)
	rows, joinDiags := Join(seg, *header, details)
	return segmentResult{rows: rows, diags: append(diags, joinDiags...)}
}
