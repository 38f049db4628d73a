package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds settings read from NTPLOT_* environment variables.
type EnvConfig struct {
	Campaign       string `env:"NTPLOT_CAMPAIGN"`
	OutputDir      string `env:"NTPLOT_OUTPUT_DIR"`
	SourceTemplate string `env:"NTPLOT_SOURCE_TEMPLATE"`
	Tree           string `env:"NTPLOT_TREE"`
	Cut            string `env:"NTPLOT_CUT"`
	Format         string `env:"NTPLOT_FORMAT"`
}

// ParseEnvConfig parses NTPLOT_* environment variables.
func ParseEnvConfig() (*EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	return &cfg, nil
}
