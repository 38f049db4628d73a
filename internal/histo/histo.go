// Package histo computes histogram ranges, fills per-class histograms and
// derives axis bounds and output file names.
package histo

import (
	"errors"
	"fmt"
	"math"

	"github.com/mrzor/ntplot/internal/eventprocessor"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/floats"
)

// DefaultBins is the number of fixed-width bins per histogram.
const DefaultBins = 100

// ErrInvalidRange is returned when the lower bound exceeds the upper bound.
var ErrInvalidRange = errors.New("invalid histogram range")

// Range returns the histogram bounds for values. A non-nil xmin or xmax
// overrides the empirical minimum or maximum. NaN and infinite values do not
// take part in the empirical bounds. A zero-width range is widened by one
// unit.
func Range(values []float64, xmin, xmax *float64) (lo, hi float64, err error) {
	if xmin == nil || xmax == nil {
		values = finite(values)
		if len(values) == 0 {
			return 0, 0, errors.New("cannot derive range from a column without finite values")
		}
	}

	if xmin != nil {
		lo = *xmin
	} else {
		lo = floats.Min(values)
	}
	if xmax != nil {
		hi = *xmax
	} else {
		hi = floats.Max(values)
	}

	if math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("%w: min %v > max %v", ErrInvalidRange, lo, hi)
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi, nil
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Build fills one histogram per class over [lo, hi). Events whose mask
// entry is false are skipped; a nil mask keeps every event. NaN values are
// dropped; infinities land in the under- or overflow.
func Build(values []float64, classes []eventprocessor.Class, mask []bool, lo, hi float64, bins int) (neg, pos *hbook.H1D, err error) {
	if len(classes) != len(values) {
		return nil, nil, fmt.Errorf("%d values but %d classes", len(values), len(classes))
	}
	if mask != nil && len(mask) != len(values) {
		return nil, nil, fmt.Errorf("%d values but %d mask entries", len(values), len(mask))
	}
	if bins < 1 {
		bins = DefaultBins
	}
	if !(lo < hi) {
		return nil, nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}

	neg = hbook.NewH1D(bins, lo, hi)
	pos = hbook.NewH1D(bins, lo, hi)
	for i, v := range values {
		if (mask != nil && !mask[i]) || math.IsNaN(v) {
			continue
		}
		if classes[i] == eventprocessor.ClassNegative {
			neg.Fill(v, 1)
		} else {
			pos.Fill(v, 1)
		}
	}
	return neg, pos, nil
}

// MaxBin returns the highest in-range bin content across hists.
// Under- and overflow are ignored.
func MaxBin(hists ...*hbook.H1D) float64 {
	max := 0.0
	for _, h := range hists {
		if h == nil {
			continue
		}
		for i := 0; i < h.Len(); i++ {
			if _, y := h.XY(i); y > max {
				max = y
			}
		}
	}
	return max
}

// YRange returns the y-axis bounds for a given maximum bin content.
// Linear: [0, 1.2*max]. Log: [0.1, next power of ten above max].
func YRange(maxBin float64, logScale bool) (ymin, ymax float64) {
	if logScale {
		ymin = 0.1
		if maxBin <= 0 {
			return ymin, 1
		}
		return ymin, math.Pow(10, math.Floor(math.Log10(maxBin))+1)
	}

	if maxBin <= 0 {
		return 0, 1
	}
	return 0, 1.2 * maxBin
}

// Frame returns the displayed x-axis range, padded outward by 20% of each
// bound's magnitude.
func Frame(lo, hi float64) (float64, float64) {
	flo := lo - 0.2*math.Abs(lo)
	fhi := hi + 0.2*math.Abs(hi)
	if flo == fhi {
		fhi = flo + 1
	}
	return flo, fhi
}

// FileName returns the image name for a field. The suffixes keep runs with
// different scaling options from overwriting each other.
func FileName(field string, scaled, logScale bool, format string) string {
	name := "hist_" + field
	if scaled {
		name += "_scaled"
	}
	if logScale {
		name += "_log"
	}
	if format == "" {
		format = "png"
	}
	return name + "." + format
}
