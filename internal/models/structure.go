package models

import "strings"

// M4 is the work element category tag (Man, Machine, Material, Environment).
type M4 string

const (
	M4Man         M4 = "MN"
	M4Machine     M4 = "MC"
	M4Material    M4 = "IM"
	M4Environment M4 = "EN"
)

// Valid reports whether m is one of the four known categories or unset.
func (m M4) Valid() bool {
	switch m {
	case "", M4Man, M4Machine, M4Material, M4Environment:
		return true
	}
	return false
}

// Product is the L1 node. There is exactly one per worksheet.
type Product struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`

	// Scopes is ordered; the order is the display order and the
	// iteration order used when building text indices.
	Scopes []RequirementScope `json:"scopes,omitempty" yaml:"scopes,omitempty"`

	FailureEffects []FailureEffect `json:"failureEffects,omitempty" yaml:"failureEffects,omitempty"`
}

// RequirementScope groups requirements by who they are owed to
// (e.g. "Your Plant", "Ship to Plant", "User").
type RequirementScope struct {
	ID           string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string        `json:"name" yaml:"name"`
	Requirements []Requirement `json:"requirements,omitempty" yaml:"requirements,omitempty"`
}

// Requirement is a single function/requirement line under a scope.
type Requirement struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// FailureEffect is an FE record owned by the product.
type FailureEffect struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Text  string `json:"text" yaml:"text"`

	// Severity is nil until the user has rated the effect.
	Severity *int `json:"severity,omitempty" yaml:"severity,omitempty"`

	// RequirementID optionally points at the requirement this effect violates.
	RequirementID string `json:"requirementId,omitempty" yaml:"requirementId,omitempty"`
}

// Process is an L2 node.
type Process struct {
	ID           string        `json:"id,omitempty" yaml:"id,omitempty"`
	No           string        `json:"no,omitempty" yaml:"no,omitempty"`
	Name         string        `json:"name" yaml:"name"`
	FailureModes []FailureMode `json:"failureModes,omitempty" yaml:"failureModes,omitempty"`
	WorkElements []WorkElement `json:"workElements,omitempty" yaml:"workElements,omitempty"`
}

// Label is the display label of the process, "<no>. <name>" when a
// display number is set.
func (p *Process) Label() string {
	no := strings.TrimSpace(p.No)
	if no == "" {
		return p.Name
	}
	return no + ". " + p.Name
}

// FailureMode is an FM record owned by a process.
type FailureMode struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// WorkElement is an L3 node.
type WorkElement struct {
	ID            string         `json:"id,omitempty" yaml:"id,omitempty"`
	M4            M4             `json:"m4,omitempty" yaml:"m4,omitempty"`
	Name          string         `json:"name" yaml:"name"`
	FailureCauses []FailureCause `json:"failureCauses,omitempty" yaml:"failureCauses,omitempty"`
}

// FailureCause is an FC record owned by a work element.
type FailureCause struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// ScopeOf returns the requirement scope name an effect falls under. The
// effect's own Scope wins; otherwise it is derived from the requirement
// back-reference.
func (p *Product) ScopeOf(fe *FailureEffect) string {
	if fe.Scope != "" || fe.RequirementID == "" {
		return fe.Scope
	}
	for i := range p.Scopes {
		for _, req := range p.Scopes[i].Requirements {
			if req.ID == fe.RequirementID {
				return p.Scopes[i].Name
			}
		}
	}
	return ""
}
