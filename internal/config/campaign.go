package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mrzor/ntplot/internal/eventprocessor"
	"github.com/mrzor/ntplot/internal/histo"
	"github.com/mrzor/ntplot/internal/output"
	"github.com/mrzor/ntplot/internal/schema"
	"github.com/mrzor/ntplot/internal/source"

	"gopkg.in/yaml.v3"
)

// Campaign describes a dataset version: where its files live, which field
// labels the events and how plots are styled. Fields missing from a campaign
// file keep their defaults.
type Campaign struct {
	Source    SourceConfig `yaml:"source"`
	Label     LabelConfig  `yaml:"label"`
	Denylist  []string     `yaml:"denylist"`
	MaxFields int          `yaml:"max_fields"`
	Bins      int          `yaml:"bins"`
	Style     StyleConfig  `yaml:"style"`
}

// SourceConfig locates the event files.
type SourceConfig struct {
	Template string `yaml:"template"` // URL with one %d for the 1-based file index
	Tree     string `yaml:"tree"`
}

// LabelConfig names the classification field and its sentinel.
type LabelConfig struct {
	Field    string  `yaml:"field"`
	Sentinel float64 `yaml:"sentinel"`
}

// StyleConfig holds the text drawn on every plot.
type StyleConfig struct {
	Experiment    string `yaml:"experiment"`
	ExtraText     string `yaml:"extra_text"`
	Energy        string `yaml:"energy"`
	NegativeLabel string `yaml:"negative_label"`
	PositiveLabel string `yaml:"positive_label"`
}

// DefaultCampaign returns the Run3 scouting electron campaign.
func DefaultCampaign() Campaign {
	style := output.DefaultStyle()
	return Campaign{
		Source: SourceConfig{
			Template: source.DefaultTemplate,
			Tree:     source.DefaultTree,
		},
		Label: LabelConfig{
			Field:    "gen_pt",
			Sentinel: eventprocessor.DefaultSentinel,
		},
		Denylist:  []string{"c_edep"},
		MaxFields: schema.DefaultMaxFields,
		Bins:      histo.DefaultBins,
		Style: StyleConfig{
			Experiment:    style.Experiment,
			ExtraText:     style.ExtraText,
			Energy:        style.Energy,
			NegativeLabel: style.NegativeLabel,
			PositiveLabel: style.PositiveLabel,
		},
	}
}

// LoadCampaign reads a YAML campaign file over the defaults.
func LoadCampaign(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading campaign file: %w", err)
	}

	c := DefaultCampaign()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing campaign file %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the campaign for values the pipeline cannot run with.
func (c *Campaign) Validate() error {
	var errs []error
	if strings.Count(c.Source.Template, "%d") != 1 {
		errs = append(errs, fmt.Errorf("campaign source template %q must contain exactly one %%d", c.Source.Template))
	}
	if c.Source.Tree == "" {
		errs = append(errs, errors.New("campaign source tree must not be empty"))
	}
	if c.Label.Field == "" {
		errs = append(errs, errors.New("campaign label field must not be empty"))
	}
	if c.MaxFields < 1 {
		errs = append(errs, fmt.Errorf("campaign max_fields must be >= 1, got %d", c.MaxFields))
	}
	if c.Bins < 1 {
		errs = append(errs, fmt.Errorf("campaign bins must be >= 1, got %d", c.Bins))
	}
	return errors.Join(errs...)
}

// PlotStyle converts the campaign style into renderer settings.
func (c *Campaign) PlotStyle() output.Style {
	s := output.DefaultStyle()
	s.Experiment = c.Style.Experiment
	s.ExtraText = c.Style.ExtraText
	s.Energy = c.Style.Energy
	s.NegativeLabel = c.Style.NegativeLabel
	s.PositiveLabel = c.Style.PositiveLabel
	return s
}
