package selection

import (
	"testing"

	"github.com/mrzor/ntplot/internal/eventstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var known = []string{"pt", "eta", "phi", "gen_pt"}

func testColumns() *eventstream.Columns {
	return &eventstream.Columns{
		Entries: 4,
		Order:   []string{"pt", "eta"},
		Label:   []float64{-50, 10, -50, 20},
		Values: map[string][]float64{
			"pt":     {1, 10, 20, 30},
			"eta":    {0.5, -2.0, 1.0, 3.0},
			"gen_pt": {-50, 10, -50, 20},
		},
	}
}

func TestCompile_Empty(t *testing.T) {
	cut, err := Compile("   ", known)
	require.NoError(t, err)
	assert.Nil(t, cut)
	assert.Nil(t, cut.Fields())
	assert.Equal(t, "", cut.String())

	mask, err := cut.Mask(testColumns())
	require.NoError(t, err)
	assert.Nil(t, mask)
}

func TestCompile_Fields(t *testing.T) {
	cut, err := Compile("pt > 5 && abs(eta) < 1.5 && pt < 100", known)
	require.NoError(t, err)
	assert.Equal(t, []string{"pt", "eta"}, cut.Fields())
	assert.Equal(t, "pt > 5 && abs(eta) < 1.5 && pt < 100", cut.String())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "syntax", code: "pt >"},
		{name: "unknown field", code: "energy > 3"},
		{name: "not boolean", code: "pt + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.code, known)
			require.Error(t, err)
		})
	}
}

func TestCut_Mask(t *testing.T) {
	cut, err := Compile("pt > 5 && abs(eta) < 1.5", known)
	require.NoError(t, err)

	mask, err := cut.Mask(testColumns())
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, false}, mask)
	assert.Equal(t, 1, Passed(mask, 4))
}

func TestCut_MaskOnLabel(t *testing.T) {
	cut, err := Compile("gen_pt != -50", known)
	require.NoError(t, err)

	mask, err := cut.Mask(testColumns())
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true}, mask)
}

func TestCut_MaskMissingColumn(t *testing.T) {
	cut, err := Compile("phi > 0", known)
	require.NoError(t, err)

	_, err = cut.Mask(testColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"phi" was not materialized`)
}

func TestPassed(t *testing.T) {
	assert.Equal(t, 7, Passed(nil, 7))
	assert.Equal(t, 2, Passed([]bool{true, false, true}, 3))
}
