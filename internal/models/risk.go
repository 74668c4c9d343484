package models

import "fmt"

// Stage selects which of the two rating rounds a value belongs to.
type Stage string

const (
	// StageRisk is the initial evaluation.
	StageRisk Stage = "risk"
	// StageOptimization is the re-evaluation after mitigation.
	StageOptimization Stage = "optimization"
)

// Stages lists both rating rounds in evaluation order.
var Stages = []Stage{StageRisk, StageOptimization}

// Rating is the user-entered Occurrence/Detection pair. Zero means not
// entered yet.
type Rating struct {
	Occurrence int `json:"occurrence,omitempty" yaml:"occurrence,omitempty"`
	Detection  int `json:"detection,omitempty" yaml:"detection,omitempty"`
}

// IsZero reports whether nothing has been entered.
func (r Rating) IsZero() bool {
	return r.Occurrence == 0 && r.Detection == 0
}

// RiskAssessment holds the ratings of one FM/FC pairing for both stages.
type RiskAssessment struct {
	Risk         Rating `json:"risk,omitempty" yaml:"risk,omitempty"`
	Optimization Rating `json:"optimization,omitempty" yaml:"optimization,omitempty"`
}

// For returns the rating of the given stage.
func (a RiskAssessment) For(stage Stage) Rating {
	if stage == StageOptimization {
		return a.Optimization
	}
	return a.Risk
}

// PairKey is the composite key under which a pairing's assessment is stored.
func PairKey(fmID, fcID string) string {
	return fmt.Sprintf("%s::%s", fmID, fcID)
}
