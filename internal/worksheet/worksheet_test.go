package worksheet

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolen/fmea/internal/ap"
	"github.com/moolen/fmea/internal/linkage"
	"github.com/moolen/fmea/internal/metrics"
	"github.com/moolen/fmea/internal/models"
)

func intPtr(v int) *int { return &v }

// fixture: "Crack" (fm-42) has two rated effects (8 and 5) and one cause;
// "Seal leak" (fm-seal) has a cause but no effect.
func fixture() *models.Worksheet {
	return &models.Worksheet{
		Product: models.Product{
			Name: "Pump housing",
			FailureEffects: []models.FailureEffect{
				{ID: "fe-1", Scope: "User", Text: "Coolant loss", Severity: intPtr(8)},
				{ID: "fe-2", Scope: "Your Plant", Text: "Rework", Severity: intPtr(5)},
				{ID: "fe-3", Scope: "User", Text: "Noise"},
			},
		},
		Processes: []models.Process{
			{
				ID: "p1", No: "10", Name: "Molding",
				FailureModes: []models.FailureMode{{ID: "fm-42", Text: "Crack"}},
				WorkElements: []models.WorkElement{
					{ID: "we-1", M4: models.M4Machine, Name: "Press", FailureCauses: []models.FailureCause{
						{ID: "c9", Text: "Mold temperature too low"},
					}},
				},
			},
			{
				ID: "p2", No: "20", Name: "Assembly",
				FailureModes: []models.FailureMode{{ID: "fm-seal", Text: "Seal leak"}},
				WorkElements: []models.WorkElement{
					{ID: "we-2", M4: models.M4Man, Name: "Operator", FailureCauses: []models.FailureCause{
						{ID: "c20", Text: "O-ring missing"},
					}},
				},
			},
		},
		Links: []models.FailureLink{
			{FMID: "fm-42", FEID: "fe-1"},
			{FMID: "fm-42", FEID: "fe-2"},
			{FMID: "fm-42", FEID: "fe-3"},
			{FMID: "fm-42", FCID: "c9"},
			{FMID: "fm-42", FCID: "c9"},
			{FMID: "fm-seal", FCID: "c20"},
		},
		Risks: map[string]models.RiskAssessment{
			"fm-42::c9": {
				Risk:         models.Rating{Occurrence: 6, Detection: 6},
				Optimization: models.Rating{Occurrence: 2, Detection: 2},
			},
		},
	}
}

func TestPairings(t *testing.T) {
	ws := Analyze(fixture(), linkage.DefaultOptions()).Worksheet

	got := Pairings(ws)

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Row)
	assert.Equal(t, "fm-42::c9", got[0].Key())
	assert.Equal(t, 8, got[0].Severity, "severity is the max over the mode's effects")
	assert.Equal(t, "Press", got[0].FCWorkElement)
	assert.Equal(t, models.M4Machine, got[0].FCM4)

	assert.Equal(t, 1, got[1].Row)
	assert.Equal(t, "fm-seal::c20", got[1].Key())
	assert.Equal(t, 0, got[1].Severity)
}

func TestPairings_NilAndEffectOnly(t *testing.T) {
	assert.Nil(t, Pairings(nil))
	assert.Empty(t, Pairings(&models.Worksheet{Links: []models.FailureLink{{FMID: "a", FEID: "b"}}}))
}

func TestLookupRisk(t *testing.T) {
	p := Pairing{Row: 0, FMID: "fm", FCID: "fc"}
	keyed := models.RiskAssessment{Risk: models.Rating{Occurrence: 3, Detection: 4}}
	legacy := models.RiskAssessment{Risk: models.Rating{Occurrence: 9, Detection: 9}}

	tests := []struct {
		name   string
		ws     *models.Worksheet
		want   models.Rating
		wantOK bool
	}{
		{"nil worksheet", nil, models.Rating{}, false},
		{"nothing stored", &models.Worksheet{}, models.Rating{}, false},
		{
			name:   "legacy row",
			ws:     &models.Worksheet{LegacyRisks: map[int]models.RiskAssessment{0: legacy}},
			want:   legacy.Risk,
			wantOK: true,
		},
		{
			name: "composite key wins over legacy row",
			ws: &models.Worksheet{
				Risks:       map[string]models.RiskAssessment{"fm::fc": keyed},
				LegacyRisks: map[int]models.RiskAssessment{0: legacy},
			},
			want:   keyed.Risk,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupRisk(tt.ws, p, models.StageRisk)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupRisk_UnresolvedCausesDoNotShareAnEntry(t *testing.T) {
	ws := fixture()
	ws.Links = append(ws.Links,
		models.FailureLink{FMID: "fm-seal", FCText: "Ghost cause A"},
		models.FailureLink{FMID: "fm-seal", FCText: "ghost cause  a"},
		models.FailureLink{FMID: "fm-seal", FCText: "Ghost cause B"},
	)
	ws.Risks["fm-seal::"] = models.RiskAssessment{Risk: models.Rating{Occurrence: 9, Detection: 9}}
	ws.LegacyRisks = map[int]models.RiskAssessment{
		3: {Risk: models.Rating{Occurrence: 2, Detection: 3}},
	}

	got := Pairings(ws)

	require.Len(t, got, 4, "cached text differing only in case and spacing is one pairing")
	for _, p := range got[2:] {
		assert.Empty(t, p.Key())
	}

	r, ok := LookupRisk(ws, got[2], models.StageRisk)
	assert.False(t, ok)
	assert.Equal(t, models.Rating{}, r)

	r, ok = LookupRisk(ws, got[3], models.StageRisk)
	assert.True(t, ok)
	assert.Equal(t, models.Rating{Occurrence: 2, Detection: 3}, r)
}

func TestAnalyze(t *testing.T) {
	a := Analyze(fixture(), linkage.DefaultOptions())

	require.Len(t, a.Assessments, 2)
	crack := a.Assessments[0]
	assert.Equal(t, ap.High, crack.RiskAP, "S=8 O=6 D=6")
	assert.Equal(t, ap.Low, crack.OptimizationAP, "S=8 O=2 D=2")

	seal := a.Assessments[1]
	assert.Equal(t, ap.Unassessed, seal.RiskAP)
	assert.Equal(t, ap.Unassessed, seal.OptimizationAP)

	assert.Equal(t, ap.Counts{High: 1, Unassessed: 1}, a.Counts[models.StageRisk])
	assert.Equal(t, ap.Counts{Low: 1, Unassessed: 1}, a.Counts[models.StageOptimization])
	assert.Equal(t, []ap.Priority{ap.High, ap.Unassessed}, a.Priorities(models.StageRisk))
	assert.False(t, a.CanConfirmRisk())
}

func TestAnalyze_CanConfirmRisk(t *testing.T) {
	ws := fixture()
	ws.Links = ws.Links[:4]
	assert.True(t, Analyze(ws, linkage.DefaultOptions()).CanConfirmRisk())

	ws.Links = nil
	assert.False(t, Analyze(ws, linkage.DefaultOptions()).CanConfirmRisk(), "no pairings")
}

func TestAnalyze_StaleIDsAreRepairedBeforeRiskLookup(t *testing.T) {
	ws := fixture()
	ws.Links = []models.FailureLink{
		{FMID: "old-fm", FMText: "crack", FMProcess: "10. Molding", FEID: "fe-1"},
		{FMID: "old-fm", FMText: "crack", FMProcess: "10. Molding", FCID: "old-c", FCText: "Mold temperature too low", FCProcess: "10. Molding"},
	}

	a := Analyze(ws, linkage.DefaultOptions())

	require.Len(t, a.Assessments, 1)
	assert.Equal(t, "fm-42::c9", a.Assessments[0].Key())
	assert.Equal(t, ap.High, a.Assessments[0].RiskAP)
	assert.Equal(t, "old-fm", ws.Links[0].FMID, "input must not change")
	assert.Equal(t, 3, a.Report.Totals.Rewritten)
}

func TestAnalyze_RepairsConfirmationFlags(t *testing.T) {
	ws := fixture()
	ws.Confirmed = models.ConfirmedFlags{L3Confirmed: true}

	a := Analyze(ws, linkage.DefaultOptions())

	assert.Equal(t, models.ConfirmedFlags{
		StructureConfirmed: true,
		L1Confirmed:        true,
		L2Confirmed:        true,
		L3Confirmed:        true,
	}, a.Worksheet.Confirmed)
	assert.False(t, ws.Confirmed.L1Confirmed)
}

func TestAnalyze_Nil(t *testing.T) {
	a := Analyze(nil, linkage.DefaultOptions())
	require.NotNil(t, a.Worksheet)
	assert.Empty(t, a.Assessments)
	assert.Equal(t, ap.Counts{}, a.Counts[models.StageRisk])
}

func TestEngine_CachesByContent(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	e, err := NewEngine(EngineConfig{Options: linkage.DefaultOptions(), CacheSize: 4, Metrics: m})
	require.NoError(t, err)

	first := e.Recompute(context.Background(), fixture())
	second := e.Recompute(context.Background(), fixture())
	assert.Same(t, first, second)

	changed := fixture()
	changed.Risks["fm-42::c9"] = models.RiskAssessment{Risk: models.Rating{Occurrence: 1, Detection: 1}}
	third := e.Recompute(context.Background(), changed)
	assert.NotSame(t, first, third)
	assert.Equal(t, ap.Low, third.Assessments[0].RiskAP)

	assert.Equal(t, CacheStats{Items: 2, Hits: 1, Misses: 2}, e.Stats())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Recomputes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))

	e.Purge()
	assert.Equal(t, 0, e.Stats().Items)
}

func TestEngine_WithoutCache(t *testing.T) {
	e, err := NewEngine(EngineConfig{})
	require.NoError(t, err)

	first := e.Recompute(context.Background(), fixture())
	second := e.Recompute(context.Background(), fixture())
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Counts, second.Counts)
	assert.Equal(t, CacheStats{}, e.Stats())
}

func TestNewEngine_RejectsNegativeCache(t *testing.T) {
	_, err := NewEngine(EngineConfig{CacheSize: -1})
	assert.Error(t, err)
}
