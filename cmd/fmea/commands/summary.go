package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/moolen/fmea/internal/format"
	"github.com/moolen/fmea/internal/importexport"
	"github.com/moolen/fmea/internal/models"
	"github.com/moolen/fmea/internal/worksheet"
)

var (
	summaryMarkdown bool
	summaryStage    string
	summaryDetails  bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>...",
	Short: "Tabulate Action Priority counts for one or more worksheets",
	Long: `Loads and recomputes every worksheet in parallel and prints one row per file
with the H/M/L tally of the selected stage, the number of unresolved link
references and the confirmed stages. --details adds a per-pairing table for
each file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryMarkdown, "markdown", false, "Render Markdown tables")
	summaryCmd.Flags().StringVar(&summaryStage, "stage", string(models.StageRisk), "Rating stage to tally (risk, optimization)")
	summaryCmd.Flags().BoolVar(&summaryDetails, "details", false, "Also print every pairing")
}

func runSummary(cmd *cobra.Command, args []string) error {
	stage := models.Stage(summaryStage)
	if stage != models.StageRisk && stage != models.StageOptimization {
		return fmt.Errorf("unknown stage %q (expected %q or %q)", summaryStage, models.StageRisk, models.StageOptimization)
	}

	engine, err := newEngine(nil)
	if err != nil {
		return err
	}

	analyses := make([]*worksheet.Analysis, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		g.Go(func() error {
			ws, err := importexport.Load(path)
			if err != nil {
				return err
			}
			analyses[i] = engine.Recompute(ctx, ws)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	mode := format.ASCII
	if summaryMarkdown {
		mode = format.Markdown
	}

	rows := make([]format.SummaryRow, len(args))
	for i, a := range analyses {
		rows[i] = format.SummaryRow{
			File:       args[i],
			Pairings:   len(a.Assessments),
			Unresolved: a.Report.Totals.Unresolved,
			Counts:     a.Counts[stage],
			Confirmed:  a.Worksheet.Confirmed,
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, format.Summary(rows, stage, mode))

	if summaryDetails {
		for i, a := range analyses {
			fmt.Fprintf(out, "\n%s\n%s\n", args[i], format.Assessments(a.Assessments, mode))
		}
	}
	return nil
}
