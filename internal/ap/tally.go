package ap

// Counts is the H/M/L tally over a set of classified pairings.
type Counts struct {
	High       int `json:"high" yaml:"high"`
	Medium     int `json:"medium" yaml:"medium"`
	Low        int `json:"low" yaml:"low"`
	Unassessed int `json:"unassessed" yaml:"unassessed"`
}

// Assessed is the number of pairings that received a rank.
func (c Counts) Assessed() int {
	return c.High + c.Medium + c.Low
}

// Total is the number of pairings tallied, ranked or not.
func (c Counts) Total() int {
	return c.Assessed() + c.Unassessed
}

// Add records one classification.
func (c *Counts) Add(p Priority) {
	switch p {
	case High:
		c.High++
	case Medium:
		c.Medium++
	case Low:
		c.Low++
	default:
		c.Unassessed++
	}
}

// Tally counts priorities. Unassessed entries are kept out of the H/M/L
// buckets.
func Tally(priorities []Priority) Counts {
	var c Counts
	for _, p := range priorities {
		c.Add(p)
	}
	return c
}
