// ntplot plots per-variable histograms of ntuple events split by a
// generator-level label.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mrzor/ntplot/internal/config"
	"github.com/mrzor/ntplot/internal/otel"
	"github.com/mrzor/ntplot/internal/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version information injected by GoReleaser at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// floatFlag is an optional float64 flag: nil until set on the command line.
type floatFlag struct {
	value *float64
}

func (f *floatFlag) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.FormatFloat(*f.value, 'g', -1, 64)
}

func (f *floatFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	f.value = &v
	return nil
}

func (f *floatFlag) Type() string { return "float" }

func newRootCmd() *cobra.Command {
	flags := config.DefaultFlags()
	var (
		xmin   floatFlag
		xmax   floatFlag
		logger *zap.Logger
	)

	cmd := &cobra.Command{
		Use:   "ntplot",
		Short: "Plot histograms for electrons",
		Long: `ntplot reads event ntuples, splits events into fake (label == sentinel)
and real electrons, and writes one histogram plot per variable.

Example:
  ntplot --maxfiles 2 --var 5 --log --x_min 0 --x_max 100`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			zcfg := zap.NewProductionConfig()
			zcfg.Encoding = "console"
			zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			if flags.Verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.XMin, flags.XMax = xmin.value, xmax.value
			return run(cmd, flags, logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.PlotMode, config.FlagPlotMode, flags.PlotMode, "Choose which histogram(s) to plot: neg, pos, or both")
	f.IntVar(&flags.MaxFiles, config.FlagMaxFiles, flags.MaxFiles, "Number of input files to load")
	f.StringVar(&flags.Var, config.FlagVar, flags.Var, "Which variable to plot (1-48) or 'all'")
	f.BoolVar(&flags.Log, config.FlagLog, flags.Log, "Plot y-axis on logarithmic scale")
	f.StringVar(&flags.OutputDir, config.FlagOutputDir, flags.OutputDir, "Output directory for saved plots")
	f.Var(&xmin, config.FlagXMin, "Minimum x-axis value (default: calculated from data)")
	f.Var(&xmax, config.FlagXMax, "Maximum x-axis value (default: calculated from data)")
	f.StringVar(&flags.Cut, config.FlagCut, flags.Cut, "Event selection expression, e.g. 'pt > 5 && abs(eta) < 1.5'")
	f.StringVar(&flags.Format, config.FlagFormat, flags.Format, "Image format: png, pdf or svg")
	f.StringVar(&flags.Campaign, config.FlagCampaign, flags.Campaign, "YAML campaign file describing the dataset")
	f.BoolVarP(&flags.Verbose, config.FlagVerbose, "v", flags.Verbose, "Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, flags config.Flags, logger *zap.Logger) error {
	envCfg, err := config.ParseEnvConfig()
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags, cmd.Flags().Changed, envCfg)
	if err != nil {
		return err
	}

	logger.Info("starting ntplot",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("plotmode", string(cfg.Mode)),
		zap.Int("maxfiles", cfg.MaxFiles),
		zap.Stringer("var", cfg.Selector),
		zap.Bool("log", cfg.LogScale),
		zap.String("output_dir", cfg.OutputDir),
	)

	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return err
	}
	tracer, cleanup, err := otel.Setup(otelCfg, fmt.Sprintf("%s (%s)", version, commit), logger)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := pipeline.Run(context.Background(), cfg, pipeline.Deps{
		Logger: logger,
		Tracer: tracer,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d plot(s) to %s (%d events: %d fake, %d real)\n",
		len(summary.Images), cfg.OutputDir, summary.Entries, summary.Negative, summary.Positive)
	return nil
}
