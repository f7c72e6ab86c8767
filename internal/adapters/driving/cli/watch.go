package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fairview-data/reportex/internal/core/ports/driving"
	"github.com/fairview-data/reportex/internal/watch"
)

var (
	watchExtsFlag     []string
	watchDebounceFlag time.Duration
	watchRulesFlag    string
	watchWorkersFlag  int
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and extract reports as they arrive",
	Long: `Watch monitors a directory tree and runs an extraction on every report
file created or rewritten under it. Each extraction is stored as a run.
Stops on Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchExtsFlag, "ext", []string{"txt"}, "file extensions to extract")
	watchCmd.Flags().DurationVar(&watchDebounceFlag, "debounce", 500*time.Millisecond, "coalesce write bursts per file")
	watchCmd.Flags().StringVar(&watchRulesFlag, "rules", "", "stored rule profile to use")
	watchCmd.Flags().IntVar(&watchWorkersFlag, "workers", 1, "segment worker count per extraction")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(true); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Dir:      args[0],
		Exts:     watchExtsFlag,
		Debounce: watchDebounceFlag,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (extensions: %v)\n", args[0], watchExtsFlag)
	return w.Run(cmd.Context(), func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		report, err := extractService.Extract(cmd.Context(), driving.ExtractRequest{
			Document: string(data),
			Source:   path,
			Profile:  watchRulesFlag,
			Workers:  watchWorkersFlag,
			Persist:  true,
		})
		if err != nil {
			return err
		}
		cmd.Printf("%s: run %s, %d rows, %d diagnostics\n",
			path, report.Run.ID, report.Run.RowCount, len(report.Diagnostics))
		return nil
	})
}
