package linkage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Crack", "crack"},
		{"  Seal   leak \t", "seal leak"},
		{"10.\nMolding", "10. molding"},
		{"", ""},
		{"   ", ""},
		{"Ölverlust", "ölverlust"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), "%q", tt.in)
	}
}

func TestBuildIndexLookups(t *testing.T) {
	idx := BuildIndex(fixture(), DefaultOptions())

	assert.Equal(t, 3, idx.Len(KindMode))
	assert.Equal(t, 2, idx.Len(KindEffect))
	assert.Equal(t, 2, idx.Len(KindCause))

	fe, ok := idx.Effect("fe-1")
	require.True(t, ok)
	require.NotNil(t, fe.Severity)
	assert.Equal(t, 8, *fe.Severity)

	fc, ok := idx.Cause("c20")
	require.True(t, ok)
	assert.Equal(t, "20. Assembly", fc.Scope)
	assert.Equal(t, "Operator", fc.WorkElement)

	_, ok = idx.Mode("nope")
	assert.False(t, ok)
}

func TestResolveOrder(t *testing.T) {
	idx := BuildIndex(fixture(), DefaultOptions())

	e, leg, ok := idx.Resolve(KindMode, "fm-p2-seal", "10. Molding", "Seal leak")
	require.True(t, ok)
	assert.Equal(t, MethodID, leg.Method)
	assert.Equal(t, "fm-p2-seal", e.ID)

	_, leg, ok = idx.Resolve(KindMode, "", "", "")
	assert.False(t, ok)
	assert.Equal(t, MethodAbsent, leg.Method)

	_, leg, ok = idx.Resolve(KindCause, "missing", "", "")
	assert.False(t, ok)
	assert.Equal(t, MethodUnresolved, leg.Method)
}

func TestParseTieBreak(t *testing.T) {
	tb, err := ParseTieBreak("")
	require.NoError(t, err)
	assert.Equal(t, TieBreakInsertion, tb)

	tb, err = ParseTieBreak("lexical")
	require.NoError(t, err)
	assert.Equal(t, TieBreakLexical, tb)

	_, err = ParseTieBreak("random")
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "FM", KindMode.String())
	assert.Equal(t, "FE", KindEffect.String())
	assert.Equal(t, "FC", KindCause.String())
}
