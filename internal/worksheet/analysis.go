package worksheet

import (
	"github.com/moolen/fmea/internal/ap"
	"github.com/moolen/fmea/internal/confirm"
	"github.com/moolen/fmea/internal/linkage"
	"github.com/moolen/fmea/internal/models"
)

// Assessment is a pairing with its ratings and priorities for both stages.
type Assessment struct {
	Pairing `yaml:",inline"`

	Risk         models.Rating `json:"risk" yaml:"risk"`
	Optimization models.Rating `json:"optimization" yaml:"optimization"`

	RiskAP         ap.Priority `json:"riskAP" yaml:"riskAP"`
	OptimizationAP ap.Priority `json:"optimizationAP" yaml:"optimizationAP"`
}

// Priority returns the priority of the given stage.
func (a Assessment) Priority(stage models.Stage) ap.Priority {
	if stage == models.StageOptimization {
		return a.OptimizationAP
	}
	return a.RiskAP
}

// Analysis is the result of one recompute. It is shared by the Engine
// cache; treat it as read-only.
type Analysis struct {
	// Worksheet is the input with normalized links and repaired
	// confirmation flags. The structure tree is shared with the input.
	Worksheet *models.Worksheet `json:"worksheet" yaml:"worksheet"`

	Report      linkage.Report             `json:"report" yaml:"report"`
	Assessments []Assessment               `json:"assessments" yaml:"assessments"`
	Counts      map[models.Stage]ap.Counts `json:"counts" yaml:"counts"`
}

// Priorities returns the per-pairing priorities of stage in pairing order.
func (a *Analysis) Priorities(stage models.Stage) []ap.Priority {
	out := make([]ap.Priority, len(a.Assessments))
	for i := range a.Assessments {
		out[i] = a.Assessments[i].Priority(stage)
	}
	return out
}

// CanConfirmRisk reports whether the risk stage is complete: at least one
// pairing exists and every pairing has a risk priority.
func (a *Analysis) CanConfirmRisk() bool {
	c := a.Counts[models.StageRisk]
	return c.Total() > 0 && c.Unassessed == 0
}

// Analyze runs the pipeline without cache, metrics or tracing.
func Analyze(ws *models.Worksheet, opts linkage.Options) *Analysis {
	if ws == nil {
		ws = &models.Worksheet{}
	}

	res := linkage.NormalizeWithReport(ws.Links, ws, opts)

	normalized := *ws
	normalized.Links = res.Links
	normalized.Confirmed = confirm.Normalize(ws.Confirmed)

	pairings := Pairings(&normalized)
	analysis := &Analysis{
		Worksheet:   &normalized,
		Report:      res.Report,
		Assessments: make([]Assessment, len(pairings)),
		Counts:      make(map[models.Stage]ap.Counts, len(models.Stages)),
	}

	for i, p := range pairings {
		risk, _ := LookupRisk(&normalized, p, models.StageRisk)
		opt, _ := LookupRisk(&normalized, p, models.StageOptimization)
		analysis.Assessments[i] = Assessment{
			Pairing:        p,
			Risk:           risk,
			Optimization:   opt,
			RiskAP:         ap.Classify(p.Severity, risk.Occurrence, risk.Detection),
			OptimizationAP: ap.Classify(p.Severity, opt.Occurrence, opt.Detection),
		}
	}

	for _, stage := range models.Stages {
		analysis.Counts[stage] = ap.Tally(analysis.Priorities(stage))
	}
	return analysis
}
