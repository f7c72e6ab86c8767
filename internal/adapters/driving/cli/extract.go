package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driving"
)

var (
	extractRulesFlag     string
	extractRulesFileFlag string
	extractFormatFlag    string
	extractOutputFlag    string
	extractWorkersFlag   int
	extractNoStoreFlag   bool
	extractStrictFlag    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract rows from a flat-text report",
	Long: `Extract parses a report file (or stdin when the argument is "-") into
normalized rows and prints them. The run is stored unless --no-store is
given; use "reportex runs" to inspect stored runs later.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractRulesFlag, "rules", "", "stored rule profile to use")
	extractCmd.Flags().StringVar(&extractRulesFileFlag, "rules-file", "", "load the rule set from a TOML file")
	extractCmd.Flags().StringVar(&extractFormatFlag, "format", "text", "output format: text, json or csv")
	extractCmd.Flags().StringVarP(&extractOutputFlag, "output", "o", "", "write output to a file instead of stdout")
	extractCmd.Flags().IntVar(&extractWorkersFlag, "workers", 1, "segment worker count (1 = sequential)")
	extractCmd.Flags().BoolVar(&extractNoStoreFlag, "no-store", false, "do not persist the run")
	extractCmd.Flags().BoolVar(&extractStrictFlag, "strict", false, "exit non-zero when any diagnostic is emitted")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := ensureServices(!extractNoStoreFlag); err != nil {
		return err
	}
	if extractService == nil {
		return fmt.Errorf("extract service not initialized")
	}

	document, source, err := readDocument(args[0])
	if err != nil {
		return err
	}

	req := driving.ExtractRequest{
		Document: document,
		Source:   source,
		Profile:  extractRulesFlag,
		Workers:  extractWorkersFlag,
		Persist:  !extractNoStoreFlag,
	}
	if extractRulesFileFlag != "" {
		rs, err := loadRuleSetFile(extractRulesFileFlag)
		if err != nil {
			return err
		}
		req.Rules = rs
	}

	report, err := extractService.Extract(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if extractOutputFlag != "" {
		f, err := os.Create(extractOutputFlag)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeExtractReport(cmd.Context(), out, report, extractFormatFlag); err != nil {
		return err
	}

	if extractStrictFlag && len(report.Diagnostics) > 0 {
		return fmt.Errorf("%d diagnostics emitted", len(report.Diagnostics))
	}
	return nil
}

// readDocument loads the report text. "-" reads stdin.
func readDocument(arg string) (document, source string, err error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "-", nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), arg, nil
}

func loadRuleSetFile(path string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rs domain.RuleSet
	if err := toml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("%w: parsing rules file: %v", domain.ErrInvalidRuleSet, err)
	}
	return &rs, nil
}

func writeExtractReport(ctx context.Context, w io.Writer, report *driving.ExtractReport, format string) error {
	switch format {
	case "text":
		return writeExtractText(w, report)
	case "json":
		return writeExtractJSON(w, report)
	case "csv":
		return exportService.ExportRows(ctx, w, report.Rows, driving.FormatCSV)
	default:
		return fmt.Errorf("%w: unknown format %q (want text, json or csv)", domain.ErrInvalidInput, format)
	}
}

func writeExtractText(w io.Writer, report *driving.ExtractReport) error {
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s  %-30s  %-14s  %s  %6d %6d %6d\n",
			row.EntityID, row.Name, row.Contact, row.Period, row.CountA, row.CountB, row.CountC)
	}
	fmt.Fprintf(w, "\n%d rows from %d segments", report.Run.RowCount, report.Run.SegmentCount)
	if n := len(report.Diagnostics); n > 0 {
		fmt.Fprintf(w, ", %d diagnostics:\n", n)
		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "  %s\n", d)
		}
	} else {
		fmt.Fprintln(w)
	}
	return nil
}

type extractJSONOutput struct {
	Run         runJSON          `json:"run"`
	Rows        []rowJSON        `json:"rows"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

type runJSON struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	RuleSet      string `json:"rule_set"`
	StartedAt    string `json:"started_at"`
	DurationMS   int64  `json:"duration_ms"`
	SegmentCount int    `json:"segment_count"`
	RowCount     int    `json:"row_count"`
}

type rowJSON struct {
	SegmentIndex int    `json:"segment_index"`
	EntityID     string `json:"entity_id"`
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Period       string `json:"period"`
	CountA       int    `json:"count_a"`
	CountB       int    `json:"count_b"`
	CountC       int    `json:"count_c"`
}

type diagnosticJSON struct {
	SegmentIndex int    `json:"segment_index"`
	Code         string `json:"code"`
	Detail       string `json:"detail"`
}

func writeExtractJSON(w io.Writer, report *driving.ExtractReport) error {
	out := extractJSONOutput{
		Run: runJSON{
			ID:           report.Run.ID,
			Source:       report.Run.Source,
			RuleSet:      report.Run.RuleSet,
			StartedAt:    report.Run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			DurationMS:   report.Run.Duration.Milliseconds(),
			SegmentCount: report.Run.SegmentCount,
			RowCount:     report.Run.RowCount,
		},
		Rows:        make([]rowJSON, 0, len(report.Rows)),
		Diagnostics: make([]diagnosticJSON, 0, len(report.Diagnostics)),
	}
	for _, r := range report.Rows {
		out.Rows = append(out.Rows, rowJSON{
			SegmentIndex: r.SegmentIndex,
			EntityID:     r.EntityID,
			Name:         r.Name,
			Contact:      r.Contact,
			Period:       r.Period,
			CountA:       r.CountA,
			CountB:       r.CountB,
			CountC:       r.CountC,
		})
	}
	for _, d := range report.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, diagnosticJSON{
			SegmentIndex: d.SegmentIndex,
			Code:         string(d.Code),
			Detail:       d.Detail,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
