package cli

import (
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored extraction runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print a run's rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDiagnosticsCmd = &cobra.Command{
	Use:   "diagnostics [run-id]",
	Short: "Print a run's diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDiagnostics,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete [run-id]",
	Short: "Delete a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDiagnosticsCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(true); err != nil {
		return err
	}
	runs, err := runService.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs stored.")
		return nil
	}
	for _, r := range runs {
		cmd.Printf("%s  %s  %s  %d segments, %d rows, %d diagnostics\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Source,
			r.SegmentCount, r.RowCount, r.DiagnosticCount)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if err := ensureServices(true); err != nil {
		return err
	}
	run, err := runService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	rows, err := runService.Rows(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Source:   %s\n", run.Source)
	cmd.Printf("  Rules:    %s\n", run.RuleSet)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Duration: %s\n\n", run.Duration)
	for _, row := range rows {
		cmd.Printf("%s  %-30s  %-14s  %s  %6d %6d %6d\n",
			row.EntityID, row.Name, row.Contact, row.Period, row.CountA, row.CountB, row.CountC)
	}
	return nil
}

func runRunsDiagnostics(cmd *cobra.Command, args []string) error {
	if err := ensureServices(true); err != nil {
		return err
	}
	diags, err := runService.Diagnostics(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(diags) == 0 {
		cmd.Println("No diagnostics.")
		return nil
	}
	for _, d := range diags {
		cmd.Println(d.String())
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	if err := ensureServices(true); err != nil {
		return err
	}
	if err := runService.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted run %s\n", args[0])
	return nil
}
