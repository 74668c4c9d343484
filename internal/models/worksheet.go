package models

// ConfirmedFlags records which analysis stages the user has confirmed.
type ConfirmedFlags struct {
	StructureConfirmed   bool `json:"structureConfirmed" yaml:"structureConfirmed"`
	L1Confirmed          bool `json:"l1Confirmed" yaml:"l1Confirmed"`
	L2Confirmed          bool `json:"l2Confirmed" yaml:"l2Confirmed"`
	L3Confirmed          bool `json:"l3Confirmed" yaml:"l3Confirmed"`
	FailureLinkConfirmed bool `json:"failureLinkConfirmed" yaml:"failureLinkConfirmed"`
}

// Worksheet is one FMEA document: the structure tree, the link table,
// the ratings and the confirmation state.
type Worksheet struct {
	Product   Product        `json:"product" yaml:"product"`
	Processes []Process      `json:"processes,omitempty" yaml:"processes,omitempty"`
	Links     []FailureLink  `json:"failureLinks,omitempty" yaml:"failureLinks,omitempty"`
	Confirmed ConfirmedFlags `json:"confirmed" yaml:"confirmed"`

	// Risks is keyed by PairKey(fmID, fcID).
	Risks map[string]RiskAssessment `json:"risks,omitempty" yaml:"risks,omitempty"`

	// LegacyRisks is keyed by the ordinal row of the pairing. Older
	// documents stored ratings this way; it is only consulted when no
	// keyed entry exists.
	LegacyRisks map[int]RiskAssessment `json:"legacyRisks,omitempty" yaml:"legacyRisks,omitempty"`
}

// Validate checks the parts of a worksheet that no recompute can repair.
func (w *Worksheet) Validate() error {
	for i := range w.Product.FailureEffects {
		fe := &w.Product.FailureEffects[i]
		if fe.Severity != nil && (*fe.Severity < 1 || *fe.Severity > 10) {
			return NewValidationError("failure effect %q: severity %d out of range 1-10", fe.ID, *fe.Severity)
		}
	}
	for i := range w.Processes {
		for j := range w.Processes[i].WorkElements {
			we := &w.Processes[i].WorkElements[j]
			if !we.M4.Valid() {
				return NewValidationError("work element %q: unknown 4M category %q", we.ID, we.M4)
			}
		}
	}
	for i := range w.Links {
		if w.Links[i].FMID == "" && w.Links[i].FMText == "" {
			return NewValidationError("failure link %d: fmId is required", i)
		}
	}
	for key, a := range w.Risks {
		if err := validateAssessment(a); err != nil {
			return NewValidationError("risk %q: %v", key, err)
		}
	}
	for row, a := range w.LegacyRisks {
		if err := validateAssessment(a); err != nil {
			return NewValidationError("risk row %d: %v", row, err)
		}
	}
	return nil
}

func validateAssessment(a RiskAssessment) error {
	for _, stage := range Stages {
		r := a.For(stage)
		if r.Occurrence < 0 || r.Occurrence > 10 {
			return NewValidationError("%s occurrence %d out of range 0-10", stage, r.Occurrence)
		}
		if r.Detection < 0 || r.Detection > 10 {
			return NewValidationError("%s detection %d out of range 0-10", stage, r.Detection)
		}
	}
	return nil
}
