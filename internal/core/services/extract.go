package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driven"
	"github.com/fairview-data/reportex/internal/core/ports/driving"
	"github.com/fairview-data/reportex/internal/extract"
	"github.com/fairview-data/reportex/internal/logger"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractService = (*ExtractionService)(nil)

// ExtractionService runs report extractions and optionally persists them.
type ExtractionService struct {
	ruleStore driven.RuleStore
	runStore  driven.RunStore
}

// NewExtractionService creates a new extraction service. Either store may
// be nil: without a rule store only explicit or built-in rules work, and
// without a run store persistence is unavailable.
func NewExtractionService(ruleStore driven.RuleStore, runStore driven.RunStore) *ExtractionService {
	return &ExtractionService{
		ruleStore: ruleStore,
		runStore:  runStore,
	}
}

// Extract parses a document into rows per the request's rule set.
// Segment and row failures surface as diagnostics on the report; the
// returned error covers rule resolution, cancellation and storage only.
func (s *ExtractionService) Extract(ctx context.Context, req driving.ExtractRequest) (*driving.ExtractReport, error) {
	ruleSet, err := s.resolveRules(ctx, req)
	if err != nil {
		return nil, err
	}

	rules, err := ruleSet.Compile()
	if err != nil {
		return nil, err
	}

	logger.Section("Extraction")
	logger.Debug("Source: %s", req.Source)
	logger.Debug("Rule set: %s, workers: %d, document bytes: %d",
		rules.Name, req.Workers, len(req.Document))

	start := time.Now()
	result, err := extract.New(rules, extract.WithWorkers(req.Workers)).Extract(ctx, req.Document)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", req.Source, err)
	}

	run := domain.Run{
		ID:              uuid.New().String(),
		Source:          req.Source,
		RuleSet:         ruleSet.Name,
		StartedAt:       start.UTC(),
		Duration:        time.Since(start),
		SegmentCount:    result.SegmentCount,
		RowCount:        len(result.Rows),
		DiagnosticCount: len(result.Diagnostics),
	}

	logger.Debug("Segments: %d, rows: %d, diagnostics: %d (%s)",
		run.SegmentCount, run.RowCount, run.DiagnosticCount, run.Duration)
	for _, d := range result.Diagnostics {
		logger.Warn("%s", d)
	}

	if req.Persist {
		if s.runStore == nil {
			return nil, domain.ErrStoreDisabled
		}
		if err := s.runStore.SaveRun(ctx, run, result.Rows, result.Diagnostics); err != nil {
			return nil, fmt.Errorf("persisting run %s: %w", run.ID, err)
		}
		logger.Debug("Persisted run %s", run.ID)
	}

	return &driving.ExtractReport{
		Run:         run,
		Rows:        result.Rows,
		Diagnostics: result.Diagnostics,
	}, nil
}

// resolveRules picks the rule set for a request: explicit rules win, then
// a named profile, then the built-in default.
func (s *ExtractionService) resolveRules(ctx context.Context, req driving.ExtractRequest) (*domain.RuleSet, error) {
	if req.Rules != nil {
		return req.Rules, nil
	}
	if req.Profile != "" {
		if s.ruleStore == nil {
			return nil, fmt.Errorf("%w: no rule store configured for profile %q", domain.ErrInvalidInput, req.Profile)
		}
		rs, err := s.ruleStore.Get(ctx, req.Profile)
		if err != nil {
			return nil, fmt.Errorf("loading profile %q: %w", req.Profile, err)
		}
		return rs, nil
	}
	rs := domain.DefaultRuleSet()
	return &rs, nil
}
