package driven

import (
	"context"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// RunStore persists extraction runs with their rows and diagnostics.
// Backed by SQLite for durable storage; a memory twin exists for tests
// and for running with persistence disabled.
type RunStore interface {
	// SaveRun stores a run together with its rows and diagnostics.
	SaveRun(ctx context.Context, run domain.Run, rows []domain.Row, diags []domain.Diagnostic) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns returns all runs, newest first.
	ListRuns(ctx context.Context) ([]domain.Run, error)

	// GetRows retrieves the rows of a run in original segment order.
	GetRows(ctx context.Context, runID string) ([]domain.Row, error)

	// GetDiagnostics retrieves the diagnostics recorded for a run.
	GetDiagnostics(ctx context.Context, runID string) ([]domain.Diagnostic, error)

	// DeleteRun removes a run and everything attached to it.
	DeleteRun(ctx context.Context, id string) error
}
