package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moolen/fmea/internal/ap"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify <severity> <occurrence> <detection>",
	Short: "Look up the Action Priority of one S/O/D triple",
	Long: `Prints H, M or L. Ratings outside 1-10 print "-" (unassessed); with --json
the priority is null.`,
	Args: cobra.ExactArgs(3),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Output as JSON")
}

type classifyResult struct {
	Severity   int         `json:"severity"`
	Occurrence int         `json:"occurrence"`
	Detection  int         `json:"detection"`
	Priority   ap.Priority `json:"priority"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	var sod [3]int
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", arg)
		}
		sod[i] = v
	}

	res := classifyResult{
		Severity:   sod[0],
		Occurrence: sod[1],
		Detection:  sod[2],
		Priority:   ap.Classify(sod[0], sod[1], sod[2]),
	}

	if classifyJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Priority)
	return err
}
