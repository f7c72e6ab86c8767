package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fairview-data/reportex/internal/adapters/driven/config/file"
	"github.com/fairview-data/reportex/internal/adapters/driven/storage/memory"
	"github.com/fairview-data/reportex/internal/core/ports/driving"
	"github.com/fairview-data/reportex/internal/core/services"
)

// sampleReport is a small two-dealer document used across command tests.
const sampleReport = `STATE VEHICLE BOARD
DEALER# 001
D101 SUNRISE MOTORS LLC  PHONE: 555-0101
UNITS SOLD IN 2023  NEW:10 USED:20 TOTAL:30
DEALER# 002
D102 HILLTOP AUTO  PHONE: 555-0102
UNITS SOLD IN 2023  NEW:5 USED:5 TOTAL:10
`

// setupTestServices wires the commands to in-memory adapters and
// returns a cleanup restoring the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	oldExtract := extractService
	oldRun := runService
	oldExport := exportService
	oldRules := ruleStore

	rs, err := file.NewRuleStore(t.TempDir())
	require.NoError(t, err)
	runStore := memory.NewRunStore()

	ruleStore = rs
	extractService = services.NewExtractionService(rs, runStore)
	runService = services.NewRunService(runStore)
	exportService = services.NewExportService(runStore)

	return func() {
		extractService = oldExtract
		runService = oldRun
		exportService = oldExport
		ruleStore = oldRules
	}
}

// seedRun stores one extraction of sampleReport and returns the run ID.
func seedRun(t *testing.T) string {
	t.Helper()

	report, err := extractService.Extract(context.Background(), driving.ExtractRequest{
		Document: sampleReport,
		Source:   "seed.txt",
		Persist:  true,
	})
	require.NoError(t, err)
	return report.Run.ID
}

// writeReportFile writes sampleReport into a temp dir and returns the path.
func writeReportFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o644))
	return path
}
