package driving

import (
	"context"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// RunService inspects stored extraction runs.
type RunService interface {
	// List returns all stored runs, newest first.
	List(ctx context.Context) ([]domain.Run, error)

	// Get retrieves one run by ID.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// Rows retrieves a run's output rows in original segment order.
	Rows(ctx context.Context, runID string) ([]domain.Row, error)

	// Diagnostics retrieves a run's diagnostics.
	Diagnostics(ctx context.Context, runID string) ([]domain.Diagnostic, error)

	// Delete removes a run and its rows and diagnostics.
	Delete(ctx context.Context, id string) error
}
