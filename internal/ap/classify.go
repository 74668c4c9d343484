package ap

import (
	"encoding/json"
	"fmt"
)

// Priority is an Action Priority rank.
type Priority string

const (
	High   Priority = "H"
	Medium Priority = "M"
	Low    Priority = "L"

	// Unassessed means at least one of S, O, D was missing or out of
	// range. It is not a rank and must not be counted as Low.
	Unassessed Priority = ""
)

// Assessed reports whether p is a real rank.
func (p Priority) Assessed() bool {
	return p == High || p == Medium || p == Low
}

func (p Priority) String() string {
	if p == Unassessed {
		return "-"
	}
	return string(p)
}

// MarshalJSON encodes Unassessed as null.
func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.Assessed() {
		return []byte("null"), nil
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts "H", "M", "L", "" and null.
func (p *Priority) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Unassessed
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch v := Priority(s); v {
	case High, Medium, Low, Unassessed:
		*p = v
		return nil
	}
	return fmt.Errorf("invalid action priority %q", s)
}

const (
	minRating = 1
	maxRating = 10
)

// Classify maps a Severity/Occurrence/Detection triple to its Action
// Priority. It returns Unassessed when any input lies outside 1-10.
//
// Severity 1 sits below the lowest severity band and is clamped into it.
func Classify(severity, occurrence, detection int) Priority {
	if !inRange(severity) || !inRange(occurrence) || !inRange(detection) {
		return Unassessed
	}
	if lowest := severityBands[len(severityBands)-1].lo; severity < lowest {
		severity = lowest
	}

	r := table[index[bandIndex(severityBands, severity)][bandIndex(occurrenceBands, occurrence)]]
	return r.priorities[bandIndex(detectionBands, detection)]
}

func inRange(v int) bool {
	return v >= minRating && v <= maxRating
}
