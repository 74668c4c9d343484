package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moolen/fmea/internal/importexport"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the worksheet format version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "fmea %s (worksheet format %s)\n", Version, importexport.CurrentFormatVersion)
		return err
	},
}
