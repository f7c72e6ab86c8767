package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairview-data/reportex/internal/core/domain"
)

func testRun(id string, startedAt time.Time) domain.Run {
	return domain.Run{
		ID:        id,
		Source:    "report.txt",
		RuleSet:   "dealership",
		StartedAt: startedAt,
		RowCount:  1,
	}
}

// TestRunStore_SaveAndGet tests round-tripping a run with rows and diagnostics.
func TestRunStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()

	run := testRun("run-1", time.Now())
	rows := []domain.Row{{SegmentIndex: 1, EntityID: "D001", Period: "2021", CountA: 10}}
	diags := []domain.Diagnostic{{SegmentIndex: 2, Code: domain.SegmentHeaderMissing, Detail: "x"}}

	require.NoError(t, store.SaveRun(ctx, run, rows, diags))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, *got)

	gotRows, err := store.GetRows(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, rows, gotRows)

	gotDiags, err := store.GetDiagnostics(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, diags, gotDiags)
}

// TestRunStore_NotFound tests miss behaviour across operations.
func TestRunStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()

	_, err := store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetRows(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetDiagnostics(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.DeleteRun(ctx, "missing"), domain.ErrNotFound)
}

// TestRunStore_ListNewestFirst tests run ordering.
func TestRunStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()

	base := time.Now()
	require.NoError(t, store.SaveRun(ctx, testRun("old", base.Add(-time.Hour)), nil, nil))
	require.NoError(t, store.SaveRun(ctx, testRun("new", base), nil, nil))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[1].ID)
}

// TestRunStore_Delete tests full cleanup.
func TestRunStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()

	require.NoError(t, store.SaveRun(ctx, testRun("run-1", time.Now()),
		[]domain.Row{{EntityID: "D001"}}, nil))
	require.NoError(t, store.DeleteRun(ctx, "run-1"))

	_, err := store.GetRun(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetRows(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRunStore_SaveCopiesInput tests that later mutation of the caller's
// slices does not leak into the store.
func TestRunStore_SaveCopiesInput(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()

	rows := []domain.Row{{EntityID: "D001"}}
	require.NoError(t, store.SaveRun(ctx, testRun("run-1", time.Now()), rows, nil))

	rows[0].EntityID = "mutated"

	got, err := store.GetRows(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "D001", got[0].EntityID)
}
