package output

import (
	"fmt"
	"strings"

	"go-hep.org/x/hep/hbook"
)

// PlotMode selects which class histograms are drawn.
type PlotMode string

// Plot modes.
const (
	ModeNegative PlotMode = "neg"
	ModePositive PlotMode = "pos"
	ModeBoth     PlotMode = "both"
)

// Formats lists the supported image formats.
var Formats = []string{"png", "pdf", "svg"}

// ParsePlotMode parses neg, pos or both.
func ParsePlotMode(s string) (PlotMode, error) {
	switch m := PlotMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeNegative, ModePositive, ModeBoth:
		return m, nil
	default:
		return "", fmt.Errorf("invalid plot mode %q: want neg, pos or both", s)
	}
}

// drawn returns the histograms shown in this mode, negative class first.
func (m PlotMode) drawn(neg, pos *hbook.H1D) []*hbook.H1D {
	switch m {
	case ModeNegative:
		return []*hbook.H1D{neg}
	case ModePositive:
		return []*hbook.H1D{pos}
	default:
		return []*hbook.H1D{neg, pos}
	}
}

// ValidFormat reports whether format is a supported image format.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
