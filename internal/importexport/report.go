package importexport

import (
	"fmt"
	"strings"

	"github.com/moolen/fmea/internal/linkage"
	"github.com/moolen/fmea/internal/models"
)

// FormatReport formats a normalization report for terminal display.
// links are the normalized rows the report belongs to.
func FormatReport(report *linkage.Report, links []models.FailureLink) string {
	var sb strings.Builder
	t := report.Totals

	sb.WriteString("Link Resolution Summary:\n")
	sb.WriteString(fmt.Sprintf("  Rows:            %d\n", len(report.Links)))
	sb.WriteString(fmt.Sprintf("  By ID:           %d\n", t.ByID))
	sb.WriteString(fmt.Sprintf("  By Scoped Text:  %d\n", t.ByScopedText))
	sb.WriteString(fmt.Sprintf("  By Text:         %d\n", t.ByText))
	sb.WriteString(fmt.Sprintf("  Rewritten IDs:   %d\n", t.Rewritten))

	if t.Ambiguous > 0 {
		sb.WriteString(fmt.Sprintf("  Ambiguous:       %d\n", t.Ambiguous))
	}
	if t.Unresolved > 0 {
		sb.WriteString(fmt.Sprintf("  Unresolved:      %d\n", t.Unresolved))
	}
	if t.MissingMode > 0 {
		sb.WriteString(fmt.Sprintf("  Missing FM:      %d\n", t.MissingMode))
	}

	dangling := report.Dangling()
	if len(dangling) > 0 {
		sb.WriteString("\nUnresolved rows:\n")
		for _, lr := range dangling {
			sb.WriteString(fmt.Sprintf("  - row %d:%s\n", lr.Row, describeDangling(lr, links)))
		}
	}

	return sb.String()
}

func describeDangling(lr linkage.LinkResolution, links []models.FailureLink) string {
	var l models.FailureLink
	if lr.Row >= 0 && lr.Row < len(links) {
		l = links[lr.Row]
	}

	var sb strings.Builder
	legs := []struct {
		kind linkage.Kind
		res  linkage.LegResolution
		id   string
		text string
	}{
		{linkage.KindMode, lr.FM, l.FMID, l.FMText},
		{linkage.KindEffect, lr.FE, l.FEID, l.FEText},
		{linkage.KindCause, lr.FC, l.FCID, l.FCText},
	}
	for _, leg := range legs {
		if leg.res.Method != linkage.MethodUnresolved {
			continue
		}
		sb.WriteString(fmt.Sprintf(" %s %q (%s)", leg.kind, leg.text, leg.id))
	}
	return sb.String()
}
