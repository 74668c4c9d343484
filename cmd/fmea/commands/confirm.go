package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moolen/fmea/internal/confirm"
	"github.com/moolen/fmea/internal/format"
	"github.com/moolen/fmea/internal/importexport"
)

var (
	confirmRevoke bool
	confirmOutput string
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <file> <stage>",
	Short: "Confirm or revoke an analysis stage",
	Long: `Confirms a stage (structure, l1, l2, l3, failure-link) and every stage it
depends on. With --revoke the stage and every stage that depends on it are
cleared. The worksheet is rewritten in place unless --output is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfirm,
}

func init() {
	confirmCmd.Flags().BoolVar(&confirmRevoke, "revoke", false, "Clear the stage instead of confirming it")
	confirmCmd.Flags().StringVarP(&confirmOutput, "output", "o", "", "Write the result to this file instead of the input")
}

func runConfirm(cmd *cobra.Command, args []string) error {
	stage, err := confirm.ParseStage(args[1])
	if err != nil {
		return err
	}

	ws, err := importexport.Load(args[0])
	if err != nil {
		return err
	}

	if confirmRevoke {
		ws.Confirmed = confirm.Revoke(ws.Confirmed, stage)
	} else {
		ws.Confirmed = confirm.Confirm(ws.Confirmed, stage)
	}

	out := confirmOutput
	if out == "" {
		out = args[0]
	}
	if err := importexport.Save(out, ws); err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), format.ConfirmedStages(ws.Confirmed))
	return err
}
