package linkage

import (
	"github.com/moolen/fmea/internal/logging"
	"github.com/moolen/fmea/internal/models"
)

// Result is a normalized link table together with its report.
type Result struct {
	Links  []models.FailureLink
	Report Report
}

// Normalize returns a copy of links with every id and cached display
// field refreshed against ws, using DefaultOptions. The inputs are not
// modified and no row is dropped.
func Normalize(links []models.FailureLink, ws *models.Worksheet) []models.FailureLink {
	return NormalizeWithReport(links, ws, DefaultOptions()).Links
}

// NormalizeWithReport is Normalize with explicit options and the
// per-leg resolution report.
func NormalizeWithReport(links []models.FailureLink, ws *models.Worksheet, opts Options) Result {
	return NormalizeWithIndex(links, BuildIndex(ws, opts))
}

// NormalizeWithIndex normalizes against a prebuilt index.
func NormalizeWithIndex(links []models.FailureLink, idx *Index) Result {
	res := Result{
		Links: make([]models.FailureLink, len(links)),
		Report: Report{
			Links: make([]LinkResolution, len(links)),
		},
	}

	for i, in := range links {
		out, lr := normalizeLink(in, idx)
		lr.Row = i
		res.Links[i] = out
		res.Report.Links[i] = lr

		for _, leg := range lr.Legs() {
			res.Report.Totals.add(leg)
		}
		if lr.FM.Method == MethodAbsent {
			res.Report.Totals.MissingMode++
		}
	}

	logging.GetLogger("linkage").DebugWithFields("normalized failure links",
		logging.Field("rows", len(links)),
		logging.Field("by_id", res.Report.Totals.ByID),
		logging.Field("by_scoped_text", res.Report.Totals.ByScopedText),
		logging.Field("by_text", res.Report.Totals.ByText),
		logging.Field("unresolved", res.Report.Totals.Unresolved),
	)

	return res
}

func normalizeLink(l models.FailureLink, idx *Index) (models.FailureLink, LinkResolution) {
	var lr LinkResolution

	e, leg, ok := idx.Resolve(KindMode, l.FMID, l.FMProcess, l.FMText)
	if ok {
		leg.PreviousID = replaced(l.FMID, e.ID)
		l.FMID, l.FMText, l.FMProcess = e.ID, e.Text, e.Scope
	}
	lr.FM = leg

	e, leg, ok = idx.Resolve(KindEffect, l.FEID, l.FEScope, l.FEText)
	if ok {
		leg.PreviousID = replaced(l.FEID, e.ID)
		l.FEID, l.FEText, l.FEScope = e.ID, e.Text, e.Scope
	}
	lr.FE = leg

	e, leg, ok = idx.Resolve(KindCause, l.FCID, l.FCProcess, l.FCText)
	if ok {
		leg.PreviousID = replaced(l.FCID, e.ID)
		l.FCID, l.FCText, l.FCProcess = e.ID, e.Text, e.Scope
		l.FCWorkElement, l.FCM4 = e.WorkElement, e.M4
	}
	lr.FC = leg

	return l, lr
}

// replaced returns the old id when resolution changed it.
func replaced(old, now string) string {
	if old != "" && old != now {
		return old
	}
	return ""
}
