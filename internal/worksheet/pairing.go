package worksheet

import (
	"github.com/moolen/fmea/internal/linkage"
	"github.com/moolen/fmea/internal/models"
)

// Pairing is one distinct (failure mode, failure cause) combination taken
// from the cause rows of the link table. Ratings are entered per pairing.
type Pairing struct {
	// Row is the pairing's ordinal position, the key legacy documents used
	// for their ratings.
	Row int `json:"row" yaml:"row"`

	FMID      string `json:"fmId" yaml:"fmId"`
	FMText    string `json:"fmText,omitempty" yaml:"fmText,omitempty"`
	FMProcess string `json:"fmProcess,omitempty" yaml:"fmProcess,omitempty"`

	FCID          string    `json:"fcId" yaml:"fcId"`
	FCText        string    `json:"fcText,omitempty" yaml:"fcText,omitempty"`
	FCProcess     string    `json:"fcProcess,omitempty" yaml:"fcProcess,omitempty"`
	FCWorkElement string    `json:"fcWorkElement,omitempty" yaml:"fcWorkElement,omitempty"`
	FCM4          models.M4 `json:"fcM4,omitempty" yaml:"fcM4,omitempty"`

	// Severity is the highest severity among the effects linked to the
	// mode; 0 when none of them is rated.
	Severity int `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// Key is the composite key of the pairing's assessment in Worksheet.Risks.
// It is empty while either leg has no id: such pairings are told apart
// only by their cached text and must not share a keyed entry.
func (p Pairing) Key() string {
	if p.FMID == "" || p.FCID == "" {
		return ""
	}
	return models.PairKey(p.FMID, p.FCID)
}

// Pairings returns the distinct FM/FC pairs of ws.Links in row order.
// Rows without a cause leg only contribute to severity. The links are
// used as they are; normalize them first.
func Pairings(ws *models.Worksheet) []Pairing {
	if ws == nil {
		return nil
	}
	severity := modeSeverities(ws)

	seen := make(map[string]bool)
	var out []Pairing
	for i := range ws.Links {
		l := &ws.Links[i]
		if !l.HasCause() {
			continue
		}
		key := models.PairKey(legKey(l.FMID, l.FMText), legKey(l.FCID, l.FCText))
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, Pairing{
			Row:           len(out),
			FMID:          l.FMID,
			FMText:        l.FMText,
			FMProcess:     l.FMProcess,
			FCID:          l.FCID,
			FCText:        l.FCText,
			FCProcess:     l.FCProcess,
			FCWorkElement: l.FCWorkElement,
			FCM4:          l.FCM4,
			Severity:      severity[l.FMID],
		})
	}
	return out
}

// modeSeverities maps each FM id to the max severity of its effect rows.
func modeSeverities(ws *models.Worksheet) map[string]int {
	byEffect := make(map[string]int, len(ws.Product.FailureEffects))
	for _, fe := range ws.Product.FailureEffects {
		if fe.ID == "" || fe.Severity == nil {
			continue
		}
		if _, dup := byEffect[fe.ID]; !dup {
			byEffect[fe.ID] = *fe.Severity
		}
	}

	out := make(map[string]int)
	for i := range ws.Links {
		l := &ws.Links[i]
		if l.FEID == "" || l.FMID == "" {
			continue
		}
		if s, ok := byEffect[l.FEID]; ok && s > out[l.FMID] {
			out[l.FMID] = s
		}
	}
	return out
}

// LookupRisk returns the stored rating of p for stage. The composite key
// wins; the legacy row index is only consulted when no keyed entry exists
// or the pairing has no key.
func LookupRisk(ws *models.Worksheet, p Pairing, stage models.Stage) (models.Rating, bool) {
	if ws == nil {
		return models.Rating{}, false
	}
	if key := p.Key(); key != "" {
		if a, ok := ws.Risks[key]; ok {
			return a.For(stage), true
		}
	}
	if a, ok := ws.LegacyRisks[p.Row]; ok {
		return a.For(stage), true
	}
	return models.Rating{}, false
}

// legKey identifies one leg for deduplication: the id when set, else the
// normalized cached text. The "#" prefix keeps text apart from ids.
func legKey(id, text string) string {
	if id != "" {
		return id
	}
	return "#" + linkage.NormalizeText(text)
}
