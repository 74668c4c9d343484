package models

// FailureLink is one row of the link table. Every row names a failure
// mode; a row with FEID set pairs that mode with an effect, a row with
// FCID set pairs it with a cause. Effect rows and cause rows are
// independent, so an FM with two effects and three causes has five rows.
//
// The *Text / *Process / *Scope fields cache the display data of the
// referenced entities. They are what survives when an id goes stale, so
// persistence must round-trip them unchanged.
type FailureLink struct {
	FMID      string `json:"fmId" yaml:"fmId"`
	FMText    string `json:"fmText,omitempty" yaml:"fmText,omitempty"`
	FMProcess string `json:"fmProcess,omitempty" yaml:"fmProcess,omitempty"`

	FEID    string `json:"feId" yaml:"feId"`
	FEText  string `json:"feText,omitempty" yaml:"feText,omitempty"`
	FEScope string `json:"feScope,omitempty" yaml:"feScope,omitempty"`

	FCID          string `json:"fcId" yaml:"fcId"`
	FCText        string `json:"fcText,omitempty" yaml:"fcText,omitempty"`
	FCProcess     string `json:"fcProcess,omitempty" yaml:"fcProcess,omitempty"`
	FCWorkElement string `json:"fcWorkElement,omitempty" yaml:"fcWorkElement,omitempty"`
	FCM4          M4     `json:"fcM4,omitempty" yaml:"fcM4,omitempty"`
}

// HasEffect reports whether the row carries an effect leg, by id or by
// cached text.
func (l *FailureLink) HasEffect() bool {
	return l.FEID != "" || l.FEText != ""
}

// HasCause reports whether the row carries a cause leg, by id or by
// cached text.
func (l *FailureLink) HasCause() bool {
	return l.FCID != "" || l.FCText != ""
}

// CloneLinks returns a shallow copy of the slice. FailureLink has no
// reference fields, so the copy is independent of the input.
func CloneLinks(links []FailureLink) []FailureLink {
	if links == nil {
		return nil
	}
	out := make([]FailureLink, len(links))
	copy(out, links)
	return out
}
