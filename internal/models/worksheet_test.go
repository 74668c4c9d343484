package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestProcessLabel(t *testing.T) {
	assert.Equal(t, "10. Molding", (&Process{No: "10", Name: "Molding"}).Label())
	assert.Equal(t, "Molding", (&Process{Name: "Molding"}).Label())
	assert.Equal(t, "Molding", (&Process{No: "  ", Name: "Molding"}).Label())
}

func TestProductScopeOf(t *testing.T) {
	p := Product{
		Scopes: []RequirementScope{
			{Name: "Your Plant", Requirements: []Requirement{{ID: "r1", Text: "Dimension"}}},
			{Name: "User", Requirements: []Requirement{{ID: "r2", Text: "No leak"}}},
		},
	}

	assert.Equal(t, "Ship to Plant", p.ScopeOf(&FailureEffect{Scope: "Ship to Plant", RequirementID: "r2"}))
	assert.Equal(t, "User", p.ScopeOf(&FailureEffect{RequirementID: "r2"}))
	assert.Equal(t, "", p.ScopeOf(&FailureEffect{RequirementID: "missing"}))
	assert.Equal(t, "", p.ScopeOf(&FailureEffect{}))
}

func TestFailureLinkLegs(t *testing.T) {
	effect := FailureLink{FMID: "fm1", FEID: "fe1"}
	assert.True(t, effect.HasEffect())
	assert.False(t, effect.HasCause())

	textOnly := FailureLink{FMID: "fm1", FCText: "Worn tool"}
	assert.False(t, textOnly.HasEffect())
	assert.True(t, textOnly.HasCause())
}

func TestCloneLinksIsIndependent(t *testing.T) {
	in := []FailureLink{{FMID: "a"}}
	out := CloneLinks(in)
	out[0].FMID = "b"

	assert.Equal(t, "a", in[0].FMID)
	assert.Nil(t, CloneLinks(nil))
}

func TestRiskAssessmentFor(t *testing.T) {
	a := RiskAssessment{
		Risk:         Rating{Occurrence: 4, Detection: 6},
		Optimization: Rating{Occurrence: 2, Detection: 3},
	}
	assert.Equal(t, Rating{Occurrence: 4, Detection: 6}, a.For(StageRisk))
	assert.Equal(t, Rating{Occurrence: 2, Detection: 3}, a.For(StageOptimization))
	assert.True(t, Rating{}.IsZero())
	assert.Equal(t, "fm1::fc2", PairKey("fm1", "fc2"))
}

func TestWorksheetValidate(t *testing.T) {
	tests := []struct {
		name    string
		ws      Worksheet
		wantErr bool
	}{
		{
			name: "empty worksheet",
			ws:   Worksheet{},
		},
		{
			name: "valid severity and ratings",
			ws: Worksheet{
				Product: Product{FailureEffects: []FailureEffect{{ID: "fe1", Text: "Leak", Severity: intPtr(8)}}},
				Links:   []FailureLink{{FMID: "fm1", FEID: "fe1"}},
				Risks:   map[string]RiskAssessment{"fm1::fc1": {Risk: Rating{Occurrence: 3, Detection: 10}}},
			},
		},
		{
			name:    "severity out of range",
			ws:      Worksheet{Product: Product{FailureEffects: []FailureEffect{{ID: "fe1", Severity: intPtr(11)}}}},
			wantErr: true,
		},
		{
			name: "unknown 4M",
			ws: Worksheet{Processes: []Process{{
				WorkElements: []WorkElement{{ID: "we1", M4: "XX"}},
			}}},
			wantErr: true,
		},
		{
			name:    "link without failure mode",
			ws:      Worksheet{Links: []FailureLink{{FEID: "fe1"}}},
			wantErr: true,
		},
		{
			name:    "text-only failure mode is accepted",
			ws:      Worksheet{Links: []FailureLink{{FMText: "Crack"}}},
			wantErr: false,
		},
		{
			name:    "legacy rating out of range",
			ws:      Worksheet{LegacyRisks: map[int]RiskAssessment{0: {Optimization: Rating{Detection: 12}}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ws.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
				return
			}
			assert.NoError(t, err)
		})
	}
}
