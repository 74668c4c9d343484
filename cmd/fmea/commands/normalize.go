package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moolen/fmea/internal/importexport"
)

var (
	normalizeOutput string
	normalizeReport bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Repair failure link ids and cached text",
	Long: `Rebuilds every failure link against the worksheet's structure tree.
Stale ids are resolved by process-scoped text, then by plain text; rows that
cannot be resolved keep their data. Confirmation flags are repaired as well.

The normalized worksheet is written to --output, or to stdout in the input
format. --report prints the resolution summary to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Write the result to this file (.json, .yaml, .yml)")
	normalizeCmd.Flags().BoolVar(&normalizeReport, "report", false, "Print the link resolution report to stderr")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	ws, err := importexport.Load(args[0])
	if err != nil {
		return err
	}

	engine, err := newEngine(nil)
	if err != nil {
		return err
	}
	analysis := engine.Recompute(cmd.Context(), ws)

	if normalizeReport {
		fmt.Fprint(cmd.ErrOrStderr(), importexport.FormatReport(&analysis.Report, analysis.Worksheet.Links))
	}

	if normalizeOutput != "" {
		return importexport.Save(normalizeOutput, analysis.Worksheet)
	}
	format, err := importexport.FormatFromPath(args[0])
	if err != nil {
		return err
	}
	return importexport.Encode(cmd.OutOrStdout(), analysis.Worksheet, format)
}
