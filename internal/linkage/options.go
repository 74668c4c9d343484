package linkage

import "fmt"

// TieBreak decides which entity a text key points at when several
// entities of the same kind share it.
type TieBreak string

const (
	// TieBreakInsertion keeps the entity registered first, in worksheet
	// order (process order, then the entity's position in its parent).
	TieBreakInsertion TieBreak = "insertion"

	// TieBreakLexical keeps the entity with the smallest id.
	TieBreakLexical TieBreak = "lexical"
)

// ParseTieBreak validates a tie-break name. The empty string selects
// TieBreakInsertion.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case "", TieBreakInsertion:
		return TieBreakInsertion, nil
	case TieBreakLexical:
		return TieBreakLexical, nil
	}
	return "", fmt.Errorf("unknown tie-break %q (expected %q or %q)", s, TieBreakInsertion, TieBreakLexical)
}

// Options tune index construction.
type Options struct {
	TieBreak TieBreak

	// Placeholders are soft-delete sentinel texts. Entities showing one
	// stay resolvable by id but are never a text-match target.
	Placeholders []string
}

// DefaultOptions returns insertion-order tie-breaking and no placeholders
// beyond the empty string.
func DefaultOptions() Options {
	return Options{TieBreak: TieBreakInsertion}
}
