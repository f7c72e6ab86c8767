// Package memory provides in-memory store implementations.
// Used by tests and when persistence is disabled (--no-store).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu    sync.RWMutex
	runs  map[string]domain.Run
	rows  map[string][]domain.Row
	diags map[string][]domain.Diagnostic
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:  make(map[string]domain.Run),
		rows:  make(map[string][]domain.Row),
		diags: make(map[string][]domain.Diagnostic),
	}
}

// SaveRun stores a run together with its rows and diagnostics.
func (s *RunStore) SaveRun(_ context.Context, run domain.Run, rows []domain.Row, diags []domain.Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	s.rows[run.ID] = append([]domain.Row(nil), rows...)
	s.diags[run.ID] = append([]domain.Diagnostic(nil), diags...)
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *RunStore) ListRuns(_ context.Context) ([]domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]domain.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// GetRows retrieves the rows of a run.
func (s *RunStore) GetRows(_ context.Context, runID string) ([]domain.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Row(nil), s.rows[runID]...), nil
}

// GetDiagnostics retrieves the diagnostics recorded for a run.
func (s *RunStore) GetDiagnostics(_ context.Context, runID string) ([]domain.Diagnostic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Diagnostic(nil), s.diags[runID]...), nil
}

// DeleteRun removes a run and everything attached to it.
func (s *RunStore) DeleteRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.runs, id)
	delete(s.rows, id)
	delete(s.diags, id)
	return nil
}
