package linkage

import "github.com/moolen/fmea/internal/models"

// Kind is the entity type a link leg points at.
type Kind int

const (
	KindMode Kind = iota
	KindEffect
	KindCause
)

func (k Kind) String() string {
	switch k {
	case KindMode:
		return "FM"
	case KindEffect:
		return "FE"
	case KindCause:
		return "FC"
	}
	return "unknown"
}

// Entity is the live view of one FM, FE or FC as a link row caches it.
type Entity struct {
	ID   string
	Text string

	// Scope is the process label for FM and FC, the requirement scope
	// name for FE.
	Scope string

	// WorkElement and M4 are only set for FC.
	WorkElement string
	M4          models.M4

	// Severity is only set for FE.
	Severity *int
}

// textEntry is the winner of one text key plus whether it had to beat
// another entity for it.
type textEntry struct {
	id        string
	ambiguous bool
}

type textIndex struct {
	tieBreak TieBreak
	entries  map[string]*textEntry
}

func newTextIndex(tb TieBreak) *textIndex {
	return &textIndex{tieBreak: tb, entries: make(map[string]*textEntry)}
}

func (t *textIndex) add(key, id string) {
	e, ok := t.entries[key]
	if !ok {
		t.entries[key] = &textEntry{id: id}
		return
	}
	if e.id == id {
		return
	}
	e.ambiguous = true
	if t.tieBreak == TieBreakLexical && id < e.id {
		e.id = id
	}
}

func (t *textIndex) lookup(key string) (*textEntry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// kindIndex holds the reverse (id) index and both text indices of one kind.
type kindIndex struct {
	byID     map[string]Entity
	unscoped *textIndex
	scoped   *textIndex
	skip     map[string]bool
}

func newKindIndex(opts Options, skip map[string]bool) *kindIndex {
	return &kindIndex{
		byID:     make(map[string]Entity),
		unscoped: newTextIndex(opts.TieBreak),
		scoped:   newTextIndex(opts.TieBreak),
		skip:     skip,
	}
}

// register adds an entity under its id and, unless its text is a
// placeholder, under its text in every given scope.
func (k *kindIndex) register(e Entity, scopes ...string) {
	if e.ID == "" {
		return
	}
	if _, dup := k.byID[e.ID]; !dup {
		k.byID[e.ID] = e
	}

	key := NormalizeText(e.Text)
	if key == "" || k.skip[key] {
		return
	}
	k.unscoped.add(key, e.ID)

	seen := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		ns := NormalizeText(s)
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		k.scoped.add(scopedKey(ns, key), e.ID)
	}
}

// Index is the lookup structure of one worksheet snapshot. It is built
// once per normalization pass and is read-only afterwards.
type Index struct {
	modes   *kindIndex
	effects *kindIndex
	causes  *kindIndex
}

// BuildIndex indexes every FM, FE and FC of the worksheet.
func BuildIndex(ws *models.Worksheet, opts Options) *Index {
	skip := make(map[string]bool, len(opts.Placeholders))
	for _, p := range opts.Placeholders {
		skip[NormalizeText(p)] = true
	}

	idx := &Index{
		modes:   newKindIndex(opts, skip),
		effects: newKindIndex(opts, skip),
		causes:  newKindIndex(opts, skip),
	}
	if ws == nil {
		return idx
	}

	for i := range ws.Processes {
		proc := &ws.Processes[i]
		label := proc.Label()

		for _, fm := range proc.FailureModes {
			idx.modes.register(Entity{ID: fm.ID, Text: fm.Text, Scope: label}, label, proc.Name)
		}
		for _, we := range proc.WorkElements {
			for _, fc := range we.FailureCauses {
				idx.causes.register(Entity{
					ID:          fc.ID,
					Text:        fc.Text,
					Scope:       label,
					WorkElement: we.Name,
					M4:          we.M4,
				}, label, proc.Name)
			}
		}
	}

	for i := range ws.Product.FailureEffects {
		fe := &ws.Product.FailureEffects[i]
		scope := ws.Product.ScopeOf(fe)
		idx.effects.register(Entity{ID: fe.ID, Text: fe.Text, Scope: scope, Severity: fe.Severity}, scope)
	}

	return idx
}

func (x *Index) kind(k Kind) *kindIndex {
	switch k {
	case KindEffect:
		return x.effects
	case KindCause:
		return x.causes
	default:
		return x.modes
	}
}

// Lookup returns the live entity of the given kind and id.
func (x *Index) Lookup(k Kind, id string) (Entity, bool) {
	e, ok := x.kind(k).byID[id]
	return e, ok
}

// Mode returns the live failure mode with the given id.
func (x *Index) Mode(id string) (Entity, bool) { return x.Lookup(KindMode, id) }

// Effect returns the live failure effect with the given id.
func (x *Index) Effect(id string) (Entity, bool) { return x.Lookup(KindEffect, id) }

// Cause returns the live failure cause with the given id.
func (x *Index) Cause(id string) (Entity, bool) { return x.Lookup(KindCause, id) }

// Len returns the number of distinct ids indexed for a kind.
func (x *Index) Len(k Kind) int {
	return len(x.kind(k).byID)
}

// Resolve finds the live entity a leg refers to, trying id, then scoped
// text, then unscoped text. ok is false when nothing matched.
func (x *Index) Resolve(k Kind, id, scope, text string) (Entity, LegResolution, bool) {
	ki := x.kind(k)

	if id != "" {
		if e, ok := ki.byID[id]; ok {
			return e, LegResolution{Method: MethodID}, true
		}
	}

	key := NormalizeText(text)
	if key != "" && !ki.skip[key] {
		if ns := NormalizeText(scope); ns != "" {
			if te, ok := ki.scoped.lookup(scopedKey(ns, key)); ok {
				return ki.byID[te.id], LegResolution{Method: MethodScopedText, Ambiguous: te.ambiguous}, true
			}
		}
		if te, ok := ki.unscoped.lookup(key); ok {
			return ki.byID[te.id], LegResolution{Method: MethodText, Ambiguous: te.ambiguous}, true
		}
	}

	if id == "" && text == "" {
		return Entity{}, LegResolution{Method: MethodAbsent}, false
	}
	return Entity{}, LegResolution{Method: MethodUnresolved}, false
}
