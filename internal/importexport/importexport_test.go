package importexport

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolen/fmea/internal/linkage"
	"github.com/moolen/fmea/internal/models"
)

func intPtr(v int) *int { return &v }

func sampleWorksheet() *models.Worksheet {
	return &models.Worksheet{
		Product: models.Product{
			ID:   "prod",
			Name: "Pump housing",
			Scopes: []models.RequirementScope{
				{ID: "s1", Name: "User", Requirements: []models.Requirement{{ID: "r1", Text: "No leaks"}}},
			},
			FailureEffects: []models.FailureEffect{
				{ID: "fe-1", RequirementID: "r1", Text: "Coolant loss", Severity: intPtr(8)},
			},
		},
		Processes: []models.Process{{
			ID: "p1", No: "10", Name: "Molding",
			FailureModes: []models.FailureMode{{ID: "fm-42", Text: "Crack"}},
			WorkElements: []models.WorkElement{{
				ID: "we-1", M4: models.M4Machine, Name: "Press",
				FailureCauses: []models.FailureCause{{ID: "c9", Text: "Mold temperature too low"}},
			}},
		}},
		Links: []models.FailureLink{
			{FMID: "fm-42", FMText: "Crack", FMProcess: "10. Molding", FEID: "fe-1", FEText: "Coolant loss", FEScope: "User"},
			// a stale row: the cached text must survive the round trip
			{FMID: "gone", FMText: "Warp", FMProcess: "10. Molding", FCID: "c-old", FCText: "Old cause", FCM4: models.M4Man},
		},
		Confirmed: models.ConfirmedFlags{StructureConfirmed: true},
		Risks: map[string]models.RiskAssessment{
			"fm-42::c9": {Risk: models.Rating{Occurrence: 4, Detection: 3}},
		},
		LegacyRisks: map[int]models.RiskAssessment{
			1: {Optimization: models.Rating{Occurrence: 2, Detection: 2}},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"ws.json", "ws.yaml", "ws.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := sampleWorksheet()

			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file must not be left behind")
		})
	}
}

func TestEncodeWritesFormatVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleWorksheet(), FormatJSON))
	assert.Contains(t, buf.String(), `"format_version": "1.0"`)
	assert.Contains(t, buf.String(), `"failureLinks"`)

	buf.Reset()
	require.NoError(t, Encode(&buf, sampleWorksheet(), FormatYAML))
	assert.True(t, strings.HasPrefix(buf.String(), "format_version: \"1.0\"\n"), buf.String())
}

func TestDecodeFormatVersion(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		expectErr bool
	}{
		{"missing version", `{"product":{"name":"P"}}`, false},
		{"1.0", `{"format_version":"1.0","product":{"name":"P"}}`, false},
		{"1.7.2", `{"format_version":"1.7.2","product":{"name":"P"}}`, false},
		{"2.0", `{"format_version":"2.0","product":{"name":"P"}}`, true},
		{"0.9", `{"format_version":"0.9","product":{"name":"P"}}`, true},
		{"garbage", `{"format_version":"latest","product":{"name":"P"}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := Decode(strings.NewReader(tt.doc), FormatJSON)
			if !tt.expectErr {
				require.NoError(t, err)
				assert.Equal(t, "P", ws.Product.Name)
				return
			}
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "got %v", err)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		format    Format
		expectErr string
	}{
		{"empty json", "", FormatJSON, "empty document"},
		{"empty yaml", "", FormatYAML, "empty document"},
		{"bad json", "{", FormatJSON, "failed to parse JSON"},
		{"bad yaml", "product: [", FormatYAML, "failed to parse YAML"},
		{"unknown format", "{}", Format("xml"), "unknown format"},
		{
			name:      "invalid worksheet",
			doc:       "product:\n  name: P\n  failureEffects:\n    - id: fe\n      text: x\n      severity: 11\n",
			format:    FormatYAML,
			expectErr: "severity 11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "ws.txt"))
	assert.ErrorContains(t, err, "cannot infer worksheet format")

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "file does not exist")

	sub := filepath.Join(dir, "dir.yaml")
	require.NoError(t, os.Mkdir(sub, 0o755))
	_, err = Load(sub)
	assert.ErrorContains(t, err, "is a directory")
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.yaml")
	doc := `format_version: "1.0"
product:
  name: Pump
  failureEffects:
    - text: Coolant loss
processes:
  - name: Molding
    failureModes:
      - id: fm-keep
        text: Crack
      - text: Warp
failureLinks:
  - fmId: ""
    fmText: Warp
    feId: ""
    feText: Coolant loss
    fcId: ""
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	ws, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fm-keep", ws.Processes[0].FailureModes[0].ID)
	for _, id := range []string{
		ws.Product.ID,
		ws.Product.FailureEffects[0].ID,
		ws.Processes[0].ID,
		ws.Processes[0].FailureModes[1].ID,
	} {
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "id %q", id)
	}

	// links keep their text; the normalizer connects them to the new ids
	assert.Empty(t, ws.Links[0].FMID)
	got := linkage.Normalize(ws.Links, ws)
	assert.Equal(t, ws.Processes[0].FailureModes[1].ID, got[0].FMID)
	assert.Equal(t, ws.Product.FailureEffects[0].ID, got[0].FEID)
}

func TestLoadAssignsStableIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.yaml")
	doc := `product:
  name: Pump
processes:
  - name: Molding
    failureModes:
      - text: Warp
      - text: Warp
    workElements:
      - name: Press
        failureCauses:
          - text: Too cold
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("ids changed between loads (-first +second):\n%s", diff)
	}
	modes := first.Processes[0].FailureModes
	assert.NotEqual(t, modes[0].ID, modes[1].ID, "same text at different positions gets distinct ids")
	_, err = uuid.Parse(first.Processes[0].WorkElements[0].FailureCauses[0].ID)
	assert.NoError(t, err)
}

func TestAssignIDsCount(t *testing.T) {
	ws := sampleWorksheet()
	assert.Equal(t, 0, AssignIDs(ws))

	ws.Processes[0].WorkElements[0].FailureCauses = append(ws.Processes[0].WorkElements[0].FailureCauses,
		models.FailureCause{Text: "New"})
	ws.Product.Scopes[0].Requirements = append(ws.Product.Scopes[0].Requirements, models.Requirement{Text: "Quiet"})
	assert.Equal(t, 2, AssignIDs(ws))
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"a.json", FormatJSON, false},
		{"A.JSON", FormatJSON, false},
		{"dir/a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.xlsx", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatReport(t *testing.T) {
	ws := sampleWorksheet()
	res := linkage.NormalizeWithReport(ws.Links, ws, linkage.DefaultOptions())

	out := FormatReport(&res.Report, res.Links)

	assert.Contains(t, out, "Link Resolution Summary:")
	assert.Contains(t, out, "Rows:            2")
	assert.Contains(t, out, "Unresolved:      2")
	assert.Contains(t, out, "Unresolved rows:")
	assert.Contains(t, out, `row 1: FM "Warp" (gone) FC "Old cause" (c-old)`)
	assert.NotContains(t, out, "Ambiguous")
}
