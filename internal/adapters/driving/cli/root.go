// Package cli implements the reportex command line interface.
// It is a driving adapter: commands translate flags and arguments into
// calls on the core services and print the results.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairview-data/reportex/internal/adapters/driven/config/file"
	"github.com/fairview-data/reportex/internal/adapters/driven/storage/sqlite"
	"github.com/fairview-data/reportex/internal/core/ports/driven"
	"github.com/fairview-data/reportex/internal/core/ports/driving"
	"github.com/fairview-data/reportex/internal/core/services"
	"github.com/fairview-data/reportex/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Wired by ensureServices on first use;
// tests replace them directly.
var (
	extractService driving.ExtractService
	runService     driving.RunService
	exportService  driving.ExportService
	ruleStore      driven.RuleStore
)

// store holds the open SQLite store so Execute can close it.
var store *sqlite.Store

var (
	verboseFlag  bool
	dataDirFlag  string
	rulesDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "reportex",
	Short: "Extract normalized rows from flat-text reports",
	Long: `reportex parses semi-structured flat-text reports (such as government
dealership sales reports) into normalized rows using configurable
pattern profiles, stores extraction runs, and exports them as CSV,
JSON or XLSX.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.reportex/data)")
	rootCmd.PersistentFlags().StringVar(&rulesDirFlag, "rules-dir", "", "rule profile directory (default ~/.reportex/rules)")
}

// ensureServices wires the default adapters into the services.
// Tests bypass this by assigning the service variables directly.
func ensureServices(needStore bool) error {
	if ruleStore != nil && extractService != nil && runService != nil && exportService != nil {
		return nil
	}
	if ruleStore == nil {
		rs, err := file.NewRuleStore(rulesDirFlag)
		if err != nil {
			return fmt.Errorf("opening rule store: %w", err)
		}
		ruleStore = rs
	}

	var runStore driven.RunStore
	if needStore {
		if store == nil {
			s, err := sqlite.NewStore(dataDirFlag)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			store = s
		}
		runStore = store.RunStore()
	}

	if runStore != nil || extractService == nil {
		extractService = services.NewExtractionService(ruleStore, runStore)
		runService = services.NewRunService(runStore)
		exportService = services.NewExportService(runStore)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if store != nil {
			_ = store.Close()
		}
	}()
	return rootCmd.Execute()
}
