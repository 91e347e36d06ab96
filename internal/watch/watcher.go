package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultQuiet is how long the watcher waits after the last matching event
// before reporting a change
const DefaultQuiet = 150 * time.Millisecond

// FileWatcher watches registry and template files and reports changes in
// batches
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	quiet    time.Duration
	onChange func(paths []string)
	logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher. onChange receives every
// matching path seen since the previous call, in arrival order.
func NewFileWatcher(patterns, exclude []string, onChange func(paths []string), logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		quiet:    DefaultQuiet,
		onChange: onChange,
		logger:   logger.With().Str("component", "watcher").Logger(),
	}, nil
}

// SetQuiet overrides the quiet period; zero reports every event immediately
func (fw *FileWatcher) SetQuiet(d time.Duration) {
	fw.quiet = d
}

// Add watches path. Directories are added recursively; for a file the
// containing directory is watched.
func (fw *FileWatcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fw.addDir(filepath.Dir(path))
	}
	return fw.AddDirectory(path)
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != dir && fw.excluded(filepath.Base(path)) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return fw.addDir(path)
		}
		return nil
	})
}

func (fw *FileWatcher) addDir(path string) error {
	if err := fw.watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", path, err)
	}
	fw.logger.Debug().Str("dir", path).Msg("watching")
	return nil
}

// Start begins watching for file changes and blocks until ctx is done
func (fw *FileWatcher) Start(ctx context.Context) error {
	var (
		pending []string
		seen    = map[string]bool{}
		timer   *time.Timer
		fire    <-chan time.Time
	)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := pending
		pending = nil
		seen = map[string]bool{}
		fw.onChange(batch)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			// new directories are picked up as they appear
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.excluded(filepath.Base(event.Name)) {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Msg("failed to watch new directory")
					}
				}
			}

			if !fw.shouldWatch(event.Name) {
				continue
			}
			fw.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change")
			if !seen[event.Name] {
				seen[event.Name] = true
				pending = append(pending, event.Name)
			}

			if fw.quiet <= 0 {
				flush()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(fw.quiet)
			} else {
				timer.Stop()
				timer.Reset(fw.quiet)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				fw.logger.Error().Err(err).Msg("watcher error")
			}
		}
	}
}

func (fw *FileWatcher) excluded(base string) bool {
	for _, pattern := range fw.exclude {
		if matched, _ := filepath.Match(strings.TrimSuffix(pattern, "/"), base); matched {
			return true
		}
	}
	return false
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	base := filepath.Base(path)

	if fw.excluded(base) {
		return false
	}

	for _, pattern := range fw.patterns {
		if strings.HasPrefix(pattern, "**/") {
			pattern = strings.TrimPrefix(pattern, "**/")
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
