package linkage

// Method is how one leg of a link row was resolved.
type Method string

const (
	// MethodID: the row's id is present in the worksheet.
	MethodID Method = "id"
	// MethodScopedText: matched on cached text within the cached scope.
	MethodScopedText Method = "scoped-text"
	// MethodText: matched on cached text across all scopes.
	MethodText Method = "text"
	// MethodUnresolved: nothing matched; the row keeps its original data.
	MethodUnresolved Method = "unresolved"
	// MethodAbsent: the row has no such leg (empty id and text).
	MethodAbsent Method = "absent"
)

// Resolved reports whether the leg now points at a live entity.
func (m Method) Resolved() bool {
	return m == MethodID || m == MethodScopedText || m == MethodText
}

// LegResolution describes the outcome for one leg.
type LegResolution struct {
	Method Method `json:"method" yaml:"method"`

	// Ambiguous is set when the matched text key was shared by more than
	// one entity and the tie-break picked the winner.
	Ambiguous bool `json:"ambiguous,omitempty" yaml:"ambiguous,omitempty"`

	// PreviousID is set when resolution replaced the row's id.
	PreviousID string `json:"previousId,omitempty" yaml:"previousId,omitempty"`
}

// LinkResolution is the outcome for one row.
type LinkResolution struct {
	Row int           `json:"row" yaml:"row"`
	FM  LegResolution `json:"fm" yaml:"fm"`
	FE  LegResolution `json:"fe" yaml:"fe"`
	FC  LegResolution `json:"fc" yaml:"fc"`
}

// Legs returns the three leg outcomes in FM, FE, FC order.
func (r LinkResolution) Legs() [3]LegResolution {
	return [3]LegResolution{r.FM, r.FE, r.FC}
}

// Totals counts leg outcomes over a whole pass.
type Totals struct {
	ByID         int `json:"byId" yaml:"byId"`
	ByScopedText int `json:"byScopedText" yaml:"byScopedText"`
	ByText       int `json:"byText" yaml:"byText"`
	Unresolved   int `json:"unresolved" yaml:"unresolved"`
	Ambiguous    int `json:"ambiguous" yaml:"ambiguous"`

	// Rewritten counts legs whose id was replaced.
	Rewritten int `json:"rewritten" yaml:"rewritten"`

	// MissingMode counts rows with neither an FM id nor FM text.
	MissingMode int `json:"missingMode" yaml:"missingMode"`
}

// Report is the data-quality side of a normalization pass.
type Report struct {
	Links  []LinkResolution `json:"links" yaml:"links"`
	Totals Totals           `json:"totals" yaml:"totals"`
}

// Clean reports whether every present leg resolved against a live entity.
func (r *Report) Clean() bool {
	return r.Totals.Unresolved == 0 && r.Totals.MissingMode == 0
}

// Dangling returns the resolutions of rows with at least one unresolved leg.
func (r *Report) Dangling() []LinkResolution {
	var out []LinkResolution
	for _, lr := range r.Links {
		for _, leg := range lr.Legs() {
			if leg.Method == MethodUnresolved {
				out = append(out, lr)
				break
			}
		}
	}
	return out
}

func (t *Totals) add(leg LegResolution) {
	switch leg.Method {
	case MethodID:
		t.ByID++
	case MethodScopedText:
		t.ByScopedText++
	case MethodText:
		t.ByText++
	case MethodUnresolved:
		t.Unresolved++
	}
	if leg.Ambiguous {
		t.Ambiguous++
	}
	if leg.PreviousID != "" {
		t.Rewritten++
	}
}
