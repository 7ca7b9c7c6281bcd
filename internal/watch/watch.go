// Package watch reloads posts when the content directory changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blogfront/internal/logging"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

// DefaultDebounce groups bursts of events into one reload.
const DefaultDebounce = 300 * time.Millisecond

// Reloader reloads the post collection.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Invalidator drops cached documents before a reload.
type Invalidator interface {
	Invalidate()
}

// Options configures a Watcher.
type Options struct {
	Dir         string
	Debounce    time.Duration
	Reloader    Reloader
	Invalidator Invalidator
	Logger      interfaces.Logger
	// Extensions limits reloads to matching files. Empty means .md and .json.
	Extensions []string
}

// Watcher watches a directory tree.
type Watcher struct {
	dir         string
	debounce    time.Duration
	reloader    Reloader
	invalidator Invalidator
	logger      interfaces.Logger
	extensions  []string
}

// New validates opts.
func New(opts Options) (*Watcher, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, fmt.Errorf("watch: directory is required")
	}
	if opts.Reloader == nil {
		return nil, fmt.Errorf("watch: reloader is required")
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{".md", ".json"}
	}
	return &Watcher{
		dir:         opts.Dir,
		debounce:    debounce,
		reloader:    opts.Reloader,
		invalidator: opts.Invalidator,
		logger:      logger,
		extensions:  extensions,
	}, nil
}

// Run blocks until ctx is cancelled, reloading after each debounced burst
// of relevant changes.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, w.dir); err != nil {
		return err
	}
	w.logger.Info("watch.started", "dir", w.dir)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						w.logger.Warn("watch.add_failed", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			w.reload(ctx, pending)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, want := range w.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (w *Watcher) reload(ctx context.Context, trigger string) {
	if w.invalidator != nil {
		w.invalidator.Invalidate()
	}
	start := time.Now()
	if err := w.reloader.Reload(ctx); err != nil {
		w.logger.Error("watch.reload_failed", "trigger", trigger, "error", err)
		return
	}
	w.logger.Info("watch.reloaded", "trigger", trigger, "duration", time.Since(start))
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}
