package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okra-platform/sdkgen/internal/watch"
)

// Watch generates once and then again every time the registry or a
// template changes. Generation errors are logged and do not stop the
// watcher.
func (c *Controller) Watch(ctx context.Context) error {
	cfg, err := c.settings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := c.Logger.With().Str("component", "watch").Logger()

	regenerate := func(reason string) {
		summary, err := c.generate(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Str("reason", reason).Msg("generation failed")
			return
		}
		logger.Info().
			Str("reason", reason).
			Int("changed", summary.Processed).
			Msg("generation complete")
	}

	fw, err := watch.NewFileWatcher(cfg.Watch.Patterns, cfg.Watch.Exclude, func(paths []string) {
		regenerate(fmt.Sprintf("%d file(s) changed", len(paths)))
	}, c.Logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(cfg.Registry); err != nil {
		return err
	}
	if cfg.Templates != "" {
		if err := fw.Add(cfg.Templates); err != nil {
			return err
		}
	}

	regenerate("initial")
	logger.Info().Str("registry", cfg.Registry).Msg("watching for changes")

	if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher stopped: %w", err)
	}
	logger.Info().Msg("stopped")
	return nil
}

