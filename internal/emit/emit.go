// Package emit writes generated files only when their content changes and
// counts what it did.
package emit

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ErrFolderMissing is returned when a destination folder does not exist and
// the emitter is not allowed to create it
var ErrFolderMissing = errors.New("folder does not exist")

// File is one generated output
type File struct {
	Path    string
	Content string
}

// Counter tracks attempted and changed files
type Counter struct {
	Visited   int
	Processed int
}

// Options control how files are written
type Options struct {
	// Format runs .go files through go/format before comparing
	Format bool
	// CreateDirs creates missing destination folders
	CreateDirs bool
}

// Emitter writes files idempotently
type Emitter struct {
	opts    Options
	logger  zerolog.Logger
	counter Counter
}

// New creates an emitter with zeroed counters
func New(opts Options, logger zerolog.Logger) *Emitter {
	return &Emitter{
		opts:   opts,
		logger: logger.With().Str("component", "emitter").Logger(),
	}
}

// Counter returns the counts so far
func (e *Emitter) Counter() Counter {
	return e.counter
}

// Write writes f unless the file on disk already holds the same bytes. It
// reports whether the file changed. Hand-written // EXISTING_CODE sections
// of the file on disk are carried into the new content first.
func (e *Emitter) Write(f File) (bool, error) {
	e.counter.Visited++

	if strings.Trim(f.Content, "\n\t\r ") == "" {
		e.logger.Debug().Str("path", f.Path).Msg("skipping empty content")
		return false, nil
	}

	if err := e.ensureFolder(filepath.Dir(f.Path)); err != nil {
		return false, err
	}

	existing, err := os.ReadFile(f.Path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}

	content := f.Content
	if exists {
		sections := ExtractSections(string(existing))
		content, err = ApplySections(content, sections)
		if err != nil {
			return false, fmt.Errorf("%s: %w", f.Path, err)
		}
	}

	if e.opts.Format && filepath.Ext(f.Path) == ".go" {
		formatted, err := format.Source([]byte(content))
		if err != nil {
			e.logFormatError(f.Path, content, err)
			return false, fmt.Errorf("failed to format %s: %w", f.Path, err)
		}
		content = string(formatted)
	}

	if exists && bytes.Equal(existing, []byte(content)) {
		e.logger.Debug().Str("path", f.Path).Msg("unchanged")
		return false, nil
	}

	if err := os.WriteFile(f.Path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	e.counter.Processed++

	if exists {
		e.logger.Info().Str("path", f.Path).Msg("wrote")
	} else {
		e.logger.Info().Str("path", f.Path).Msg("created")
	}
	return true, nil
}

func (e *Emitter) ensureFolder(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrFolderMissing, dir)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !e.opts.CreateDirs {
		return fmt.Errorf("%w: %s", ErrFolderMissing, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

func (e *Emitter) logFormatError(path, content string, err error) {
	e.logger.Error().Err(err).Str("path", path).Msg("generated code does not format")
	for i, line := range strings.Split(content, "\n") {
		e.logger.Error().Msgf("%4d: %s", i+1, line)
	}
}
