package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driving"
)

var (
	exportFormatFlag string
	exportOutputFlag string
)

var exportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export a stored run's rows",
	Long:  `Export writes the rows of a stored run as CSV, JSON or XLSX.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormatFlag, "format", "csv", "export format: csv, json or xlsx")
	exportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := ensureServices(true); err != nil {
		return err
	}

	var format driving.ExportFormat
	switch exportFormatFlag {
	case "csv":
		format = driving.FormatCSV
	case "json":
		format = driving.FormatJSON
	case "xlsx":
		format = driving.FormatXLSX
	default:
		return fmt.Errorf("%w: unknown format %q (want csv, json or xlsx)", domain.ErrInvalidInput, exportFormatFlag)
	}

	if format == driving.FormatXLSX && exportOutputFlag == "" {
		return fmt.Errorf("%w: xlsx export requires --output", domain.ErrInvalidInput)
	}

	out := cmd.OutOrStdout()
	if exportOutputFlag != "" {
		f, err := os.Create(exportOutputFlag)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return exportService.ExportRun(cmd.Context(), out, args[0], format)
}
