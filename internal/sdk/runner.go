// Package sdk drives one generation pass: it walks the relevant routes in
// registry order and emits the minimal and full SDK files for each.
package sdk

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/okra-platform/sdkgen/internal/codegen"
	"github.com/okra-platform/sdkgen/internal/emit"
	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/okra-platform/sdkgen/internal/templates"
	"github.com/rs/zerolog"
)

// Options configure a run
type Options struct {
	// SDKRoot receives the minimal per-route files
	SDKRoot string
	// ClientRoot receives the full options files
	ClientRoot string
	// Emit controls formatting and folder creation
	Emit emit.Options
}

// Summary reports what a run did
type Summary struct {
	// Routes is the number of routes generated
	Routes int
	// Known is the number of routes in the registry
	Known int
	emit.Counter
}

// Runner generates SDK files for every relevant route
type Runner struct {
	registry  *registry.Registry
	generator codegen.Generator
	store     templates.Store
	opts      Options
	logger    zerolog.Logger
}

// NewRunner creates a runner
func NewRunner(reg *registry.Registry, gen codegen.Generator, store templates.Store, opts Options, logger zerolog.Logger) *Runner {
	return &Runner{
		registry:  reg,
		generator: gen,
		store:     store,
		opts:      opts,
		logger:    logger.With().Str("component", "sdk").Logger(),
	}
}

// Run performs one full generation pass. Counters start at zero on every
// call. The first failure aborts the run.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	texts, err := templates.LoadAll(r.store)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load templates: %w", err)
	}

	emitter := emit.New(r.opts.Emit, r.logger)
	summary := Summary{Known: len(r.registry.Routes())}

	for _, route := range r.registry.RelevantRoutes() {
		if err := ctx.Err(); err != nil {
			return r.finish(summary, emitter), err
		}

		if err := r.generateRoute(route, texts, emitter); err != nil {
			return r.finish(summary, emitter), fmt.Errorf("route %s: %w", route.Name, err)
		}
		summary.Routes++
	}

	summary = r.finish(summary, emitter)
	r.logger.Info().
		Int("routes", summary.Routes).
		Int("known", summary.Known).
		Int("visited", summary.Visited).
		Int("changed", summary.Processed).
		Msgf("processed %d/%d paths (changed %d/%d files)", summary.Routes, summary.Known, summary.Processed, summary.Visited)

	return summary, nil
}

func (r *Runner) generateRoute(route registry.Route, texts map[string]string, emitter *emit.Emitter) error {
	values, err := r.generator.Generate(route)
	if err != nil {
		return err
	}

	r.logger.Debug().
		Str("route", route.Name).
		Str("package", values.Package).
		Msg("generating route")

	fileName := route.Name + r.generator.FileExtension()
	files := []emit.File{
		{
			Path:    filepath.Join(r.opts.SDKRoot, fileName),
			Content: templates.Render(texts[templates.Minimal], values),
		},
		{
			Path:    filepath.Join(r.opts.ClientRoot, fileName),
			Content: templates.Render(texts[templates.Full], values),
		},
	}

	for _, f := range files {
		if _, err := emitter.Write(f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) finish(summary Summary, emitter *emit.Emitter) Summary {
	summary.Counter = emitter.Counter()
	return summary
}
