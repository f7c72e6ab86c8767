package driving

import (
	"context"
	"io"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// ExportFormat selects an export encoding.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportService renders extraction rows to tabular formats.
// Serialization is deliberately outside the extraction core: the pipeline
// owns no file format.
type ExportService interface {
	// ExportRows writes rows to w in the requested format.
	ExportRows(ctx context.Context, w io.Writer, rows []domain.Row, format ExportFormat) error

	// ExportRun loads a stored run's rows and writes them to w.
	ExportRun(ctx context.Context, w io.Writer, runID string, format ExportFormat) error
}
