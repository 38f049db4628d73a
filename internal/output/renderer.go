package output

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/mrzor/ntplot/internal/histo"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Style holds the labels and colors drawn on every plot.
type Style struct {
	Experiment    string
	ExtraText     string
	Energy        string // Center-of-mass energy in TeV
	NegativeLabel string
	PositiveLabel string
	NegativeColor color.Color
	PositiveColor color.Color
	Width         vg.Length
	Height        vg.Length
}

// DefaultStyle is the CMS simulation style for the electron ntuples.
func DefaultStyle() Style {
	return Style{
		Experiment:    "CMS",
		ExtraText:     "Simulation Preliminary",
		Energy:        "13.6",
		NegativeLabel: "Fake electrons",
		PositiveLabel: "Real electrons",
		NegativeColor: color.NRGBA{R: 255, A: 255},
		PositiveColor: color.NRGBA{B: 255, A: 255},
		Width:         8 * vg.Inch,
		Height:        6 * vg.Inch,
	}
}

// Options configures a Renderer.
type Options struct {
	Dir      string
	Mode     PlotMode
	LogScale bool
	Format   string
	Style    Style
	Logger   *zap.Logger
}

// Renderer draws and saves histogram plots.
type Renderer struct {
	dir      string
	mode     PlotMode
	logScale bool
	format   string
	style    Style
	logger   *zap.Logger
}

// NewRenderer creates the output directory and returns a Renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Mode == "" {
		opts.Mode = ModeBoth
	}
	if _, err := ParsePlotMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if opts.Format == "" {
		opts.Format = "png"
	}
	if !ValidFormat(opts.Format) {
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Renderer{
		dir:      opts.Dir,
		mode:     opts.Mode,
		logScale: opts.LogScale,
		format:   opts.Format,
		style:    opts.Style,
		logger:   opts.Logger,
	}, nil
}

// HistPlot is one field's input to Render.
type HistPlot struct {
	Field  string
	Neg    *hbook.H1D
	Pos    *hbook.H1D
	Lo, Hi float64 // Histogram range
	Scaled bool    // Range came from explicit bounds
}

// Render draws hp and writes it under the output directory. It returns the
// written file path.
func (r *Renderer) Render(hp HistPlot) (string, error) {
	p, err := r.plot(hp)
	if err != nil {
		return "", err
	}

	fname := filepath.Join(r.dir, histo.FileName(hp.Field, hp.Scaled, r.logScale, r.format))
	if err := p.Save(r.style.Width, r.style.Height, fname); err != nil {
		return "", fmt.Errorf("saving %s: %w", fname, err)
	}

	r.logger.Debug("wrote plot", zap.String("field", hp.Field), zap.String("file", fname))
	return fname, nil
}

// plot builds the plot for hp without saving it.
func (r *Renderer) plot(hp HistPlot) (*hplot.Plot, error) {
	if hp.Neg == nil || hp.Pos == nil {
		return nil, fmt.Errorf("field %q: missing histogram", hp.Field)
	}

	drawn := r.mode.drawn(hp.Neg, hp.Pos)
	ymin, ymax := histo.YRange(histo.MaxBin(drawn...), r.logScale)
	xmin, xmax := histo.Frame(hp.Lo, hp.Hi)

	p := hplot.New()
	p.Title.Text = r.header()
	p.X.Label.Text = hp.Field
	p.Y.Label.Text = "Events/bin"
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax
	if r.logScale {
		p.Y.Label.Text = "Events/bin (log scale)"
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Legend.Top = true

	if r.mode != ModePositive {
		h := r.histogram(hp.Neg, r.style.NegativeColor)
		p.Add(h)
		p.Legend.Add(r.style.NegativeLabel, h)
	}
	if r.mode != ModeNegative {
		h := r.histogram(hp.Pos, r.style.PositiveColor)
		p.Add(h)
		p.Legend.Add(r.style.PositiveLabel, h)
	}

	// Adding plotters may widen the axes; pin the computed frame.
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax
	return p, nil
}

func (r *Renderer) histogram(h *hbook.H1D, c color.Color) *hplot.H1D {
	hh := hplot.NewH1D(h, hplot.WithLogY(r.logScale))
	hh.LineStyle.Color = c
	hh.LineStyle.Width = vg.Points(2)
	hh.FillColor = nil
	return hh
}

func (r *Renderer) header() string {
	s := r.style
	text := s.Experiment
	if s.ExtraText != "" {
		text += " " + s.ExtraText
	}
	if s.Energy != "" {
		text += fmt.Sprintf("    (%s TeV)", s.Energy)
	}
	return text
}
