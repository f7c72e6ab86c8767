package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driven"
	"github.com/fairview-data/reportex/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// columns is the export column order, shared by every format.
var columns = []string{"entity_id", "name", "contact", "period", "count_a", "count_b", "count_c"}

// ExportService renders extraction rows to CSV, JSON or XLSX.
type ExportService struct {
	runStore driven.RunStore
}

// NewExportService creates a new export service. The run store may be nil
// when only ExportRows is needed.
func NewExportService(runStore driven.RunStore) *ExportService {
	return &ExportService{runStore: runStore}
}

// ExportRun loads a stored run's rows and writes them to w.
func (s *ExportService) ExportRun(ctx context.Context, w io.Writer, runID string, format driving.ExportFormat) error {
	if s.runStore == nil {
		return domain.ErrStoreDisabled
	}
	rows, err := s.runStore.GetRows(ctx, runID)
	if err != nil {
		return fmt.Errorf("loading rows for run %s: %w", runID, err)
	}
	return s.ExportRows(ctx, w, rows, format)
}

// ExportRows writes rows to w in the requested format.
func (s *ExportService) ExportRows(_ context.Context, w io.Writer, rows []domain.Row, format driving.ExportFormat) error {
	switch format {
	case driving.FormatCSV:
		return writeCSV(w, rows)
	case driving.FormatJSON:
		return writeJSON(w, rows)
	case driving.FormatXLSX:
		return writeXLSX(w, rows)
	default:
		return fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
}

func writeCSV(w io.Writer, rows []domain.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.EntityID, r.Name, r.Contact, r.Period,
			strconv.Itoa(r.CountA), strconv.Itoa(r.CountB), strconv.Itoa(r.CountC),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// exportRow gives rows stable JSON field names without tagging the
// domain type.
type exportRow struct {
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Period   string `json:"period"`
	CountA   int    `json:"count_a"`
	CountB   int    `json:"count_b"`
	CountC   int    `json:"count_c"`
}

func writeJSON(w io.Writer, rows []domain.Row) error {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRow{
			EntityID: r.EntityID, Name: r.Name, Contact: r.Contact, Period: r.Period,
			CountA: r.CountA, CountB: r.CountB, CountC: r.CountC,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func writeXLSX(w io.Writer, rows []domain.Row) error {
	f := excelize.NewFile()
	const sheet = "Rows"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for i, h := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, r := range rows {
		values := []any{r.EntityID, r.Name, r.Contact, r.Period, r.CountA, r.CountB, r.CountC}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
