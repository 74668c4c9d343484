// Package confirm keeps the five stage-confirmed flags of a worksheet
// consistent with their dependency chain.
//
// Stages form a total order: Structure, L1, L2, L3, FailureLink. A
// confirmed stage implies every shallower stage is confirmed. Normalize
// only ever raises flags; lowering one is an explicit Revoke.
package confirm

import (
	"fmt"
	"strings"

	"github.com/moolen/fmea/internal/models"
)

// Stage names one confirmable analysis stage.
type Stage string

const (
	Structure   Stage = "structure"
	L1          Stage = "l1"
	L2          Stage = "l2"
	L3          Stage = "l3"
	FailureLink Stage = "failureLink"
)

// stageField binds a stage to the flag that stores it.
type stageField struct {
	stage Stage
	flag  func(*models.ConfirmedFlags) *bool
}

// chain lists the stages shallowest first. Every rule in this package is
// derived from this order; inserting a stage only means adding a line.
var chain = []stageField{
	{Structure, func(f *models.ConfirmedFlags) *bool { return &f.StructureConfirmed }},
	{L1, func(f *models.ConfirmedFlags) *bool { return &f.L1Confirmed }},
	{L2, func(f *models.ConfirmedFlags) *bool { return &f.L2Confirmed }},
	{L3, func(f *models.ConfirmedFlags) *bool { return &f.L3Confirmed }},
	{FailureLink, func(f *models.ConfirmedFlags) *bool { return &f.FailureLinkConfirmed }},
}

// Stages returns the stages shallowest first.
func Stages() []Stage {
	out := make([]Stage, len(chain))
	for i, sf := range chain {
		out[i] = sf.stage
	}
	return out
}

// ParseStage resolves a stage name case-insensitively. "fl" and
// "failure-link" are accepted as aliases of failureLink.
func ParseStage(name string) (Stage, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "fl", "failure-link", "failure_link", "failurelink":
		return FailureLink, nil
	}
	for _, sf := range chain {
		if strings.ToLower(string(sf.stage)) == n {
			return sf.stage, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q (expected one of %s)", name, joinStages())
}

func joinStages() string {
	names := make([]string, len(chain))
	for i, sf := range chain {
		names[i] = string(sf.stage)
	}
	return strings.Join(names, ", ")
}

func position(stage Stage) int {
	for i, sf := range chain {
		if sf.stage == stage {
			return i
		}
	}
	return -1
}

// IsConfirmed reports the flag of one stage.
func IsConfirmed(flags models.ConfirmedFlags, stage Stage) bool {
	i := position(stage)
	if i < 0 {
		return false
	}
	return *chain[i].flag(&flags)
}

// Normalize raises every stage that a deeper confirmed stage depends on.
// It never lowers a flag and Normalize(Normalize(x)) == Normalize(x).
func Normalize(flags models.ConfirmedFlags) models.ConfirmedFlags {
	raise := false
	for i := len(chain) - 1; i >= 0; i-- {
		f := chain[i].flag(&flags)
		if *f {
			raise = true
		} else if raise {
			*f = true
		}
	}
	return flags
}

// Consistent reports whether flags already satisfy the dependency chain.
func Consistent(flags models.ConfirmedFlags) bool {
	return Normalize(flags) == flags
}

// Confirm sets the given stage and everything it depends on.
func Confirm(flags models.ConfirmedFlags, stage Stage) models.ConfirmedFlags {
	if i := position(stage); i >= 0 {
		*chain[i].flag(&flags) = true
	}
	return Normalize(flags)
}

// Revoke clears the given stage and every deeper stage, which would
// otherwise re-raise it on the next Normalize.
func Revoke(flags models.ConfirmedFlags, stage Stage) models.ConfirmedFlags {
	i := position(stage)
	if i < 0 {
		return flags
	}
	for _, sf := range chain[i:] {
		*sf.flag(&flags) = false
	}
	return flags
}
