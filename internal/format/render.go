package format

import (
	"fmt"
	"strconv"

	"github.com/moolen/fmea/internal/ap"
	"github.com/moolen/fmea/internal/models"
	"github.com/moolen/fmea/internal/worksheet"
)

// SummaryRow is one worksheet file in a summary table.
type SummaryRow struct {
	File       string
	Pairings   int
	Unresolved int
	Counts     ap.Counts
	Confirmed  models.ConfirmedFlags
}

// Summary renders one row per file with the H/M/L tally of a stage and a
// totals footer.
func Summary(rows []SummaryRow, stage models.Stage, m Mode) string {
	t := NewTable(m)
	t.Header("File", "Pairings", "H", "M", "L", "Unassessed", "Unresolved", "Confirmed")
	t.Columns(
		ColumnConfig{Number: 1, MaxWidth: 48},
		ColumnConfig{Number: 2, Align: AlignRight},
		ColumnConfig{Number: 3, Align: AlignRight},
		ColumnConfig{Number: 4, Align: AlignRight},
		ColumnConfig{Number: 5, Align: AlignRight},
		ColumnConfig{Number: 6, Align: AlignRight},
		ColumnConfig{Number: 7, Align: AlignRight},
	)

	var total ap.Counts
	var pairings, unresolved int
	for _, r := range rows {
		t.Row(r.File, r.Pairings, r.Counts.High, r.Counts.Medium, r.Counts.Low,
			r.Counts.Unassessed, r.Unresolved, ConfirmedStages(r.Confirmed))
		total.High += r.Counts.High
		total.Medium += r.Counts.Medium
		total.Low += r.Counts.Low
		total.Unassessed += r.Counts.Unassessed
		pairings += r.Pairings
		unresolved += r.Unresolved
	}
	t.Footer(fmt.Sprintf("TOTAL (%s)", stage), pairings, total.High, total.Medium, total.Low,
		total.Unassessed, unresolved, "")
	return t.String()
}

// Assessments renders one row per pairing with both stages.
func Assessments(as []worksheet.Assessment, m Mode) string {
	t := NewTable(m)
	t.Header("#", "Failure Mode", "Failure Cause", "S", "O", "D", "AP", "O'", "D'", "AP'")
	t.Columns(
		ColumnConfig{Number: 2, MaxWidth: 32},
		ColumnConfig{Number: 3, MaxWidth: 32},
		ColumnConfig{Number: 7, Align: AlignCenter},
		ColumnConfig{Number: 10, Align: AlignCenter},
	)
	for _, a := range as {
		t.Row(a.Row+1,
			label(a.FMProcess, a.FMText),
			label(a.FCWorkElement, a.FCText),
			Rating(a.Severity),
			Rating(a.Risk.Occurrence), Rating(a.Risk.Detection), a.RiskAP,
			Rating(a.Optimization.Occurrence), Rating(a.Optimization.Detection), a.OptimizationAP,
		)
	}
	return t.String()
}

// Rating prints an unset (zero) rating as "-".
func Rating(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v)
}

// ConfirmedStages is a compact flag string, e.g. "S L1 L2 - -".
func ConfirmedStages(f models.ConfirmedFlags) string {
	marks := []struct {
		on   bool
		name string
	}{
		{f.StructureConfirmed, "S"},
		{f.L1Confirmed, "L1"},
		{f.L2Confirmed, "L2"},
		{f.L3Confirmed, "L3"},
		{f.FailureLinkConfirmed, "FL"},
	}
	out := ""
	for i, mk := range marks {
		if i > 0 {
			out += " "
		}
		if mk.on {
			out += mk.name
		} else {
			out += "-"
		}
	}
	return out
}

func label(scope, text string) string {
	if scope == "" {
		return text
	}
	return scope + " / " + text
}
