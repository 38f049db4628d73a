package histo

import (
	"errors"
	"math"
	"testing"

	"github.com/mrzor/ntplot/internal/eventprocessor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
)

func ptr(v float64) *float64 { return &v }

func TestRange_Empirical(t *testing.T) {
	lo, hi, err := Range([]float64{3, -1.5, 7, 2}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, -1.5, lo)
	assert.Equal(t, 7.0, hi)
}

func TestRange_DegenerateWidened(t *testing.T) {
	lo, hi, err := Range([]float64{4, 4, 4}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestRange_Overrides(t *testing.T) {
	values := []float64{-100, 0, 100}

	tests := []struct {
		name       string
		xmin, xmax *float64
		lo, hi     float64
	}{
		{name: "both", xmin: ptr(-1), xmax: ptr(1), lo: -1, hi: 1},
		{name: "wider than data", xmin: ptr(-500), xmax: ptr(500), lo: -500, hi: 500},
		{name: "min only", xmin: ptr(-10), lo: -10, hi: 100},
		{name: "max only", xmax: ptr(10), lo: -100, hi: 10},
		{name: "equal overrides", xmin: ptr(2), xmax: ptr(2), lo: 2, hi: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, err := Range(values, tt.xmin, tt.xmax)
			require.NoError(t, err)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestRange_OverridesWithoutData(t *testing.T) {
	lo, hi, err := Range(nil, ptr(0), ptr(10))
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)

	_, _, err = Range(nil, ptr(0), nil)
	require.Error(t, err)
}

func TestRange_Invalid(t *testing.T) {
	_, _, err := Range([]float64{1, 2}, ptr(5), ptr(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, _, err = Range([]float64{1, 2}, ptr(5), nil)
	assert.True(t, errors.Is(err, ErrInvalidRange), "min override above data max")
}

func binTotal(h *hbook.H1D) float64 {
	sum := 0.0
	for i := 0; i < h.Len(); i++ {
		_, y := h.XY(i)
		sum += y
	}
	return sum
}

func TestBuild_SplitsByClass(t *testing.T) {
	values := []float64{0.5, 1.5, 2.5, 3.5}
	classes := []eventprocessor.Class{
		eventprocessor.ClassNegative,
		eventprocessor.ClassPositive,
		eventprocessor.ClassNegative,
		eventprocessor.ClassPositive,
	}

	neg, pos, err := Build(values, classes, nil, 0, 4, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, neg.Len())
	assert.Equal(t, 2.0, binTotal(neg))
	assert.Equal(t, 2.0, binTotal(pos))

	_, y := neg.XY(0)
	assert.Equal(t, 1.0, y)
	_, y = neg.XY(1)
	assert.Equal(t, 0.0, y)
	_, y = pos.XY(1)
	assert.Equal(t, 1.0, y)
}

func TestBuild_RangeReflectsBounds(t *testing.T) {
	values := []float64{-1000, 5, 1000}
	classes := eventprocessor.Classify([]float64{1, 1, 1}, eventprocessor.DefaultSentinel)

	neg, pos, err := Build(values, classes, nil, 0, 10, DefaultBins)
	require.NoError(t, err)

	for _, h := range []*hbook.H1D{neg, pos} {
		assert.Equal(t, 0.0, h.XMin())
		assert.Equal(t, 10.0, h.XMax())
		assert.Equal(t, DefaultBins, h.Len())
	}
	assert.Equal(t, 1.0, binTotal(pos), "out-of-range values go to under/overflow")
}

func TestBuild_Mask(t *testing.T) {
	values := []float64{1, 2, 3}
	classes := []eventprocessor.Class{
		eventprocessor.ClassPositive,
		eventprocessor.ClassPositive,
		eventprocessor.ClassNegative,
	}

	neg, pos, err := Build(values, classes, []bool{true, false, true}, 0, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, binTotal(pos))
	assert.Equal(t, 1.0, binTotal(neg))
}

func TestRange_NonFiniteValues(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)

	lo, hi, err := Range([]float64{nan, 2, -inf, 5, inf, nan}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 5.0, hi)

	lo, hi, err = Range([]float64{nan, 3}, nil, ptr(10))
	require.NoError(t, err)
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 10.0, hi)

	_, _, err = Range([]float64{nan, inf}, nil, nil)
	require.Error(t, err)

	lo, hi, err = Range([]float64{nan, inf}, ptr(0), ptr(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestBuild_NonFiniteValues(t *testing.T) {
	values := []float64{math.NaN(), 1.5, math.Inf(1), math.Inf(-1), 2.5}
	classes := []eventprocessor.Class{
		eventprocessor.ClassPositive,
		eventprocessor.ClassPositive,
		eventprocessor.ClassPositive,
		eventprocessor.ClassPositive,
		eventprocessor.ClassNegative,
	}

	neg, pos, err := Build(values, classes, nil, 0, 4, 4)
	require.NoError(t, err)

	// NaN is dropped, both infinities are counted as outflow.
	assert.Equal(t, int64(3), pos.Entries())
	assert.Equal(t, int64(1), neg.Entries())

	inRange := 0.0
	for i := 0; i < pos.Len(); i++ {
		inRange += pos.Value(i)
	}
	assert.Equal(t, 1.0, inRange)
	assert.Equal(t, 1.0, MaxBin(pos))
}

func TestBuild_LengthMismatch(t *testing.T) {
	_, _, err := Build([]float64{1, 2}, []eventprocessor.Class{eventprocessor.ClassPositive}, nil, 0, 1, 10)
	require.Error(t, err)

	_, _, err = Build([]float64{1}, []eventprocessor.Class{eventprocessor.ClassPositive}, []bool{}, 0, 1, 10)
	require.Error(t, err)

	_, _, err = Build([]float64{1}, []eventprocessor.Class{eventprocessor.ClassPositive}, nil, 1, 1, 10)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestMaxBin(t *testing.T) {
	a := hbook.NewH1D(2, 0, 2)
	b := hbook.NewH1D(2, 0, 2)
	a.Fill(0.5, 1)
	a.Fill(0.5, 1)
	b.Fill(1.5, 1)
	b.Fill(1.5, 1)
	b.Fill(1.5, 1)
	b.Fill(10, 1) // overflow is not a bin

	assert.Equal(t, 2.0, MaxBin(a))
	assert.Equal(t, 3.0, MaxBin(a, b))
	assert.Equal(t, 0.0, MaxBin(nil))
}

func TestYRange(t *testing.T) {
	tests := []struct {
		name       string
		max        float64
		log        bool
		ymin, ymax float64
	}{
		{name: "linear", max: 50, ymin: 0, ymax: 60},
		{name: "log 50", max: 50, log: true, ymin: 0.1, ymax: 100},
		{name: "log 1", max: 1, log: true, ymin: 0.1, ymax: 10},
		{name: "log 999", max: 999, log: true, ymin: 0.1, ymax: 1000},
		{name: "log 1000", max: 1000, log: true, ymin: 0.1, ymax: 10000},
		{name: "linear empty", max: 0, ymin: 0, ymax: 1},
		{name: "log empty", max: 0, log: true, ymin: 0.1, ymax: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ymin, ymax := YRange(tt.max, tt.log)
			assert.Equal(t, tt.ymin, ymin)
			assert.InDelta(t, tt.ymax, ymax, 1e-9)
		})
	}
}

func TestFrame(t *testing.T) {
	lo, hi := Frame(-10, 20)
	assert.Equal(t, -12.0, lo)
	assert.Equal(t, 24.0, hi)

	lo, hi = Frame(10, 20)
	assert.Equal(t, 8.0, lo, "positive lower bound is padded downward")
	assert.Equal(t, 24.0, hi)

	lo, hi = Frame(0, 1)
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 1.2, hi, 1e-12)
	assert.False(t, math.IsNaN(lo))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		scaled, log bool
		format      string
		want        string
	}{
		{want: "hist_pt.png"},
		{scaled: true, want: "hist_pt_scaled.png"},
		{log: true, want: "hist_pt_log.png"},
		{scaled: true, log: true, format: "pdf", want: "hist_pt_scaled_log.pdf"},
	}

	seen := map[string]bool{}
	for _, tt := range tests {
		got := FileName("pt", tt.scaled, tt.log, tt.format)
		assert.Equal(t, tt.want, got)
		seen[got] = true
	}
	assert.Len(t, seen, len(tests))
}
