package services

import (
	"context"

	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driven"
	"github.com/fairview-data/reportex/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunService = (*RunService)(nil)

// RunService inspects stored extraction runs.
type RunService struct {
	runStore driven.RunStore
}

// NewRunService creates a new run service.
func NewRunService(runStore driven.RunStore) *RunService {
	return &RunService{runStore: runStore}
}

// List returns all stored runs, newest first.
func (s *RunService) List(ctx context.Context) ([]domain.Run, error) {
	if s.runStore == nil {
		return nil, domain.ErrStoreDisabled
	}
	return s.runStore.ListRuns(ctx)
}

// Get retrieves one run by ID.
func (s *RunService) Get(ctx context.Context, id string) (*domain.Run, error) {
	if s.runStore == nil {
		return nil, domain.ErrStoreDisabled
	}
	return s.runStore.GetRun(ctx, id)
}

// Rows retrieves a run's output rows in original segment order.
func (s *RunService) Rows(ctx context.Context, runID string) ([]domain.Row, error) {
	if s.runStore == nil {
		return nil, domain.ErrStoreDisabled
	}
	return s.runStore.GetRows(ctx, runID)
}

// Diagnostics retrieves a run's diagnostics.
func (s *RunService) Diagnostics(ctx context.Context, runID string) ([]domain.Diagnostic, error) {
	if s.runStore == nil {
		return nil, domain.ErrStoreDisabled
	}
	return s.runStore.GetDiagnostics(ctx, runID)
}

// Delete removes a run and its rows and diagnostics.
func (s *RunService) Delete(ctx context.Context, id string) error {
	if s.runStore == nil {
		return domain.ErrStoreDisabled
	}
	return s.runStore.DeleteRun(ctx, id)
}
