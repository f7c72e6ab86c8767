// Package watch delivers filesystem events for report files dropped into
// a directory. It powers "reportex watch", which extracts each new or
// rewritten report as it lands.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fairview-data/reportex/internal/logger"
)

// Config controls one watch session.
type Config struct {
	// Dir is the directory to watch, recursively.
	Dir string

	// Exts filters events to these extensions (lowercase, no dot).
	// Empty means every file.
	Exts []string

	// Debounce coalesces rapid write bursts on the same file. Editors
	// and network copies often produce several writes per save.
	Debounce time.Duration
}

// Watcher emits the paths of report files created or rewritten under a
// directory tree.
type Watcher struct {
	cfg  Config
	exts map[string]struct{}
	fsw  *fsnotify.Watcher
}

// New validates the config and starts watching the directory tree.
// Run must be called to start delivering events.
func New(cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch directory is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{cfg: cfg, fsw: fsw}
	if len(cfg.Exts) > 0 {
		w.exts = make(map[string]struct{}, len(cfg.Exts))
		for _, e := range cfg.Exts {
			w.exts[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
		}
	}

	if err := w.addTree(cfg.Dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", cfg.Dir, err)
	}
	return w, nil
}

// addTree registers the directory and every subdirectory with fsnotify,
// which only watches single directories.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

// Run delivers matching file paths to handler until ctx is cancelled.
// Handler errors are logged, not fatal: one bad report must not stop
// the watch.
func (w *Watcher) Run(ctx context.Context, handler func(path string) error) error {
	defer w.fsw.Close()

	var timer *time.Timer
	pending := make(map[string]struct{})
	fire := make(chan struct{}, 1)

	flush := func() {
		for path := range pending {
			delete(pending, path)
			if err := handler(path); err != nil {
				logger.Error("handling %s: %v", path, err)
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-fire:
			flush()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				// New directories join the watch; Add on a plain
				// file fails harmlessly.
				_ = w.fsw.Add(ev.Name)
			}
			if !w.matches(ev.Name) || ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watch event: %s %s", ev.Op, ev.Name)
			pending[ev.Name] = struct{}{}
			if w.cfg.Debounce <= 0 {
				flush()
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.cfg.Debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", err)
		}
	}
}

// matches reports whether the path passes the extension filter.
func (w *Watcher) matches(path string) bool {
	if w.exts == nil {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	_, ok := w.exts[ext]
	return ok
}
