// Package config resolves the run configuration from defaults, an optional
// campaign file, environment variables and command-line flags.
package config

import (
	"fmt"

	"github.com/mrzor/ntplot/internal/output"
	"github.com/mrzor/ntplot/internal/schema"
)

// Flag names, shared with the command definition.
const (
	FlagPlotMode  = "plotmode"
	FlagMaxFiles  = "maxfiles"
	FlagVar       = "var"
	FlagLog       = "log"
	FlagOutputDir = "output_dir"
	FlagXMin      = "x_min"
	FlagXMax      = "x_max"
	FlagCut       = "cut"
	FlagFormat    = "format"
	FlagCampaign  = "campaign"
	FlagVerbose   = "verbose"
)

// DefaultOutputDir is where plots go when nothing else is configured.
const DefaultOutputDir = "plot_images_1"

// Flags holds raw command-line values.
type Flags struct {
	PlotMode  string
	MaxFiles  int
	Var       string
	Log       bool
	OutputDir string
	XMin      *float64
	XMax      *float64
	Cut       string
	Format    string
	Campaign  string
	Verbose   bool
}

// DefaultFlags returns the command-line defaults.
func DefaultFlags() Flags {
	return Flags{
		PlotMode:  string(output.ModeBoth),
		MaxFiles:  1,
		Var:       "all",
		OutputDir: DefaultOutputDir,
		Format:    "png",
	}
}

// Config holds the resolved configuration of one run.
type Config struct {
	Mode      output.PlotMode
	MaxFiles  int
	Selector  schema.Selector
	LogScale  bool
	OutputDir string
	XMin      *float64
	XMax      *float64
	Cut       string
	Format    string
	Verbose   bool
	Campaign  Campaign
}

// Scaled reports whether an explicit x-axis bound was given.
func (c *Config) Scaled() bool {
	return c.XMin != nil || c.XMax != nil
}

// Load resolves the configuration. Precedence, lowest first: defaults,
// campaign file, environment, flags explicitly set on the command line.
// changed reports whether a flag was set explicitly; nil means none were.
func Load(flags Flags, changed func(name string) bool, envCfg *EnvConfig) (*Config, error) {
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if envCfg == nil {
		envCfg = &EnvConfig{}
	}

	// Environment fills whatever the command line left at its default.
	if envCfg.OutputDir != "" && !changed(FlagOutputDir) {
		flags.OutputDir = envCfg.OutputDir
	}
	if envCfg.Cut != "" && !changed(FlagCut) {
		flags.Cut = envCfg.Cut
	}
	if envCfg.Format != "" && !changed(FlagFormat) {
		flags.Format = envCfg.Format
	}
	if envCfg.Campaign != "" && !changed(FlagCampaign) {
		flags.Campaign = envCfg.Campaign
	}

	campaign := DefaultCampaign()
	if flags.Campaign != "" {
		loaded, err := LoadCampaign(flags.Campaign)
		if err != nil {
			return nil, err
		}
		campaign = *loaded
	}
	if envCfg.SourceTemplate != "" {
		campaign.Source.Template = envCfg.SourceTemplate
	}
	if envCfg.Tree != "" {
		campaign.Source.Tree = envCfg.Tree
	}

	mode, err := output.ParsePlotMode(flags.PlotMode)
	if err != nil {
		return nil, err
	}
	sel, err := schema.ParseSelector(flags.Var)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Mode:      mode,
		MaxFiles:  flags.MaxFiles,
		Selector:  sel,
		LogScale:  flags.Log,
		OutputDir: flags.OutputDir,
		XMin:      flags.XMin,
		XMax:      flags.XMax,
		Cut:       flags.Cut,
		Format:    flags.Format,
		Verbose:   flags.Verbose,
		Campaign:  campaign,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values that cannot be caught by parsing.
func (c *Config) Validate() error {
	if c.MaxFiles < 1 {
		return fmt.Errorf("--%s must be >= 1, got %d", FlagMaxFiles, c.MaxFiles)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("--%s must not be empty", FlagOutputDir)
	}
	if !output.ValidFormat(c.Format) {
		return fmt.Errorf("--%s %q: want one of %v", FlagFormat, c.Format, output.Formats)
	}
	if c.XMin != nil && c.XMax != nil && *c.XMin > *c.XMax {
		return fmt.Errorf("--%s (%v) is greater than --%s (%v)", FlagXMin, *c.XMin, FlagXMax, *c.XMax)
	}
	return c.Campaign.Validate()
}
