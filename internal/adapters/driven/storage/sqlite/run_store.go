package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun stores a run with its rows and diagnostics in one transaction.
func (s *runStore) SaveRun(ctx context.Context, run domain.Run, rows []domain.Row, diags []domain.Diagnostic) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, rule_set, started_at, duration_ms, segment_count, row_count, diagnostic_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			rule_set = excluded.rule_set,
			started_at = excluded.started_at,
			duration_ms = excluded.duration_ms,
			segment_count = excluded.segment_count,
			row_count = excluded.row_count,
			diagnostic_count = excluded.diagnostic_count
	`, run.ID, run.Source, run.RuleSet, run.StartedAt.UTC(), run.Duration.Milliseconds(),
		run.SegmentCount, run.RowCount, run.DiagnosticCount)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	// Replace attached rows and diagnostics wholesale on re-save.
	if _, err := tx.ExecContext(ctx, "DELETE FROM run_rows WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM run_diagnostics WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing diagnostics: %w", err)
	}

	for i, row := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_rows (run_id, position, segment_index, entity_id, name, contact, period, count_a, count_b, count_c)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, row.SegmentIndex, row.EntityID, row.Name, row.Contact,
			row.Period, row.CountA, row.CountB, row.CountC)
		if err != nil {
			return fmt.Errorf("saving row %d: %w", i, err)
		}
	}

	for i, d := range diags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_diagnostics (run_id, position, segment_index, code, detail)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, i, d.SegmentIndex, string(d.Code), d.Detail)
		if err != nil {
			return fmt.Errorf("saving diagnostic %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source, rule_set, started_at, duration_ms, segment_count, row_count, diagnostic_count
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	return run, nil
}

// ListRuns returns all runs, newest first.
func (s *runStore) ListRuns(ctx context.Context) ([]domain.Run, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source, rule_set, started_at, duration_ms, segment_count, row_count, diagnostic_count
		FROM runs ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRows retrieves a run's rows in original segment order.
func (s *runStore) GetRows(ctx context.Context, runID string) ([]domain.Row, error) {
	if err := s.exists(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT segment_index, entity_id, name, contact, period, count_a, count_b, count_c
		FROM run_rows WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		var r domain.Row
		if err := rows.Scan(&r.SegmentIndex, &r.EntityID, &r.Name, &r.Contact,
			&r.Period, &r.CountA, &r.CountB, &r.CountC); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetDiagnostics retrieves a run's diagnostics.
func (s *runStore) GetDiagnostics(ctx context.Context, runID string) ([]domain.Diagnostic, error) {
	if err := s.exists(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT segment_index, code, detail
		FROM run_diagnostics WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying diagnostics: %w", err)
	}
	defer rows.Close()

	var out []domain.Diagnostic
	for rows.Next() {
		var d domain.Diagnostic
		var code string
		if err := rows.Scan(&d.SegmentIndex, &code, &d.Detail); err != nil {
			return nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		d.Code = domain.DiagnosticCode(code)
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteRun removes a run; rows and diagnostics cascade.
func (s *runStore) DeleteRun(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// exists reports domain.ErrNotFound when the run is absent.
func (s *runStore) exists(ctx context.Context, id string) error {
	var one int
	err := s.store.db.QueryRowContext(ctx, "SELECT 1 FROM runs WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// scanner lets scanRun work on both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*domain.Run, error) {
	var (
		run        domain.Run
		startedAt  time.Time
		durationMS int64
	)
	if err := sc.Scan(&run.ID, &run.Source, &run.RuleSet, &startedAt, &durationMS,
		&run.SegmentCount, &run.RowCount, &run.DiagnosticCount); err != nil {
		return nil, err
	}
	run.StartedAt = startedAt
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}
