package pipeline

import (
	"context"
	"fmt"

	"github.com/mrzor/ntplot/internal/config"
	"github.com/mrzor/ntplot/internal/eventprocessor"
	"github.com/mrzor/ntplot/internal/eventstream"
	"github.com/mrzor/ntplot/internal/histo"
	"github.com/mrzor/ntplot/internal/output"
	"github.com/mrzor/ntplot/internal/schema"
	"github.com/mrzor/ntplot/internal/selection"
	"github.com/mrzor/ntplot/internal/source"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Deps are the ambient services a run uses.
type Deps struct {
	Logger *zap.Logger
	Tracer trace.Tracer
}

// Summary reports what a run did.
type Summary struct {
	Files    int
	Entries  int
	Negative int
	Positive int
	Passed   int // Events kept by the cut
	Fields   []string
	Skipped  []schema.Exclusion
	Images   []string
}

// Run executes the whole campaign described by cfg.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (*Summary, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("ntplot")
	}
	r := &run{cfg: cfg, logger: logger, tracer: tracer, summary: &Summary{}}

	ctx, span := tracer.Start(ctx, "ntplot.run")
	defer span.End()

	if err := r.execute(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return r.summary, nil
}

type run struct {
	cfg     *config.Config
	logger  *zap.Logger
	tracer  trace.Tracer
	summary *Summary
}

func (r *run) execute(ctx context.Context) error {
	campaign := r.cfg.Campaign

	chain, err := r.load(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := chain.Close(); err != nil {
			r.logger.Warn("closing sources", zap.Error(err))
		}
	}()

	selected, cut, err := r.selectFields(ctx, chain)
	if err != nil {
		return err
	}

	renderer, err := output.NewRenderer(output.Options{
		Dir:      r.cfg.OutputDir,
		Mode:     r.cfg.Mode,
		LogScale: r.cfg.LogScale,
		Format:   r.cfg.Format,
		Style:    campaign.PlotStyle(),
		Logger:   r.logger,
	})
	if err != nil {
		return err
	}

	cols, err := r.materialize(ctx, chain, selected, cut)
	if err != nil {
		return err
	}

	classes := r.classify(ctx, cols)

	mask, err := cut.Mask(cols)
	if err != nil {
		return err
	}
	r.summary.Passed = selection.Passed(mask, cols.Entries)
	if cut != nil {
		r.logger.Info("applied cut",
			zap.String("cut", cut.String()),
			zap.Int("passed", r.summary.Passed),
			zap.Int("entries", cols.Entries),
		)
	}

	if err := r.render(ctx, renderer, cols, classes, mask); err != nil {
		return err
	}

	r.logger.Info("Plotting complete.", zap.Int("images", len(r.summary.Images)))
	return nil
}

func (r *run) load(ctx context.Context) (*source.Chain, error) {
	_, span := r.tracer.Start(ctx, "load")
	defer span.End()

	src := r.cfg.Campaign.Source
	urls, err := source.URLs(src.Template, r.cfg.MaxFiles)
	if err != nil {
		return nil, err
	}

	chain, err := source.Open(urls, src.Tree, r.logger)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("loading sources: %w", err)
	}

	r.summary.Files = chain.Files()
	span.SetAttributes(
		attribute.Int("files", chain.Files()),
		attribute.Int64("entries", chain.Entries()),
	)
	r.logger.Info("loaded sources",
		zap.Int("files", chain.Files()),
		zap.Int64("entries", chain.Entries()),
		zap.String("tree", src.Tree),
	)
	return chain, nil
}

func (r *run) selectFields(ctx context.Context, chain *source.Chain) ([]string, *selection.Cut, error) {
	_, span := r.tracer.Start(ctx, "schema")
	defer span.End()

	campaign := r.cfg.Campaign
	cat := schema.FromTree(chain.Tree())
	if !cat.Has(campaign.Label.Field) {
		return nil, nil, fmt.Errorf("label field %q not found in tree", campaign.Label.Field)
	}

	eligible, excluded := schema.Filter(cat, schema.FilterOptions{
		Label:    campaign.Label.Field,
		Denylist: campaign.Denylist,
	})
	for _, ex := range excluded {
		r.logger.Info("skipping variable "+ex.Field, zap.String("reason", ex.Reason))
	}
	r.summary.Skipped = excluded

	selected, err := schema.Select(eligible, r.cfg.Selector, campaign.MaxFields)
	if err != nil {
		return nil, nil, fmt.Errorf("selecting variable %s: %w", r.cfg.Selector, err)
	}
	r.summary.Fields = selected

	// Denylisted scalars may still be cut on, they are just not plotted.
	cut, err := selection.Compile(r.cfg.Cut, schema.Scalars(cat))
	if err != nil {
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("eligible", len(eligible)),
		attribute.Int("selected", len(selected)),
	)
	return selected, cut, nil
}

func (r *run) materialize(ctx context.Context, chain *source.Chain, selected []string, cut *selection.Cut) (*eventstream.Columns, error) {
	_, span := r.tracer.Start(ctx, "materialize")
	defer span.End()

	fields := append(append([]string(nil), selected...), cut.Fields()...)
	cols, err := eventstream.Materialize(chain.Tree(), fields, r.cfg.Campaign.Label.Field, eventstream.Options{
		Logger: r.logger,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("materializing events: %w", err)
	}

	// Cut-only fields are read but never plotted.
	cols.Order = selected
	r.summary.Entries = cols.Entries
	span.SetAttributes(attribute.Int("entries", cols.Entries))
	return cols, nil
}

func (r *run) classify(ctx context.Context, cols *eventstream.Columns) []eventprocessor.Class {
	_, span := r.tracer.Start(ctx, "classify")
	defer span.End()

	classes := eventprocessor.Classify(cols.Label, r.cfg.Campaign.Label.Sentinel)
	counts := eventprocessor.Count(classes)
	r.summary.Negative = counts.Negative
	r.summary.Positive = counts.Positive

	span.SetAttributes(
		attribute.Int("negative", counts.Negative),
		attribute.Int("positive", counts.Positive),
	)
	r.logger.Info("classified events",
		zap.Int("negative", counts.Negative),
		zap.Int("positive", counts.Positive),
	)
	return classes
}

func (r *run) render(ctx context.Context, renderer *output.Renderer, cols *eventstream.Columns, classes []eventprocessor.Class, mask []bool) error {
	ctx, span := r.tracer.Start(ctx, "render")
	defer span.End()

	for _, field := range cols.Order {
		path, err := r.renderField(ctx, renderer, cols, field, classes, mask)
		if err != nil {
			span.RecordError(err)
			return err
		}
		r.summary.Images = append(r.summary.Images, path)
	}
	span.SetAttributes(attribute.Int("images", len(r.summary.Images)))
	return nil
}

func (r *run) renderField(ctx context.Context, renderer *output.Renderer, cols *eventstream.Columns, field string, classes []eventprocessor.Class, mask []bool) (string, error) {
	_, span := r.tracer.Start(ctx, "render.field", trace.WithAttributes(attribute.String("field", field)))
	defer span.End()

	values, err := cols.Column(field)
	if err != nil {
		return "", err
	}

	lo, hi, err := histo.Range(values, r.cfg.XMin, r.cfg.XMax)
	if err != nil {
		return "", fmt.Errorf("field %q: %w", field, err)
	}
	r.logger.Info("histogram range",
		zap.String("field", field),
		zap.Float64("min", lo),
		zap.Float64("max", hi),
	)

	neg, pos, err := histo.Build(values, classes, mask, lo, hi, r.cfg.Campaign.Bins)
	if err != nil {
		return "", fmt.Errorf("field %q: %w", field, err)
	}

	path, err := renderer.Render(output.HistPlot{
		Field:  field,
		Neg:    neg,
		Pos:    pos,
		Lo:     lo,
		Hi:     hi,
		Scaled: r.cfg.Scaled(),
	})
	if err != nil {
		return "", fmt.Errorf("rendering %q: %w", field, err)
	}
	return path, nil
}
