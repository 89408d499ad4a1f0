// Package watch rebuilds lecture outputs when source files change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-mdslides/internal/fileutil"
)

// OnChange is called after the debounce window with the set of changed
// markdown files, deduplicated.
type OnChange func(paths []string)

// Watcher watches markdown sources and fires a debounced callback.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a Watcher. A nil logger discards output.
func New(debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{debounce: debounce, logger: logger}
}

// Run watches root (a file or directory) until ctx is cancelled.
//
// Directories are watched recursively, and directories created at runtime
// are added to the watch list. Editors often save via rename-replace, so
// single files are watched through their parent directory and filtered by
// name. Change events are coalesced over the debounce window before cb runs.
func (w *Watcher) Run(ctx context.Context, root string, cb OnChange) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	info, err := os.Stat(root)
	if err != nil {
		return err
	}

	var only string // non-empty when watching a single file
	if info.IsDir() {
		if err := addDirsRecursive(fsw, root); err != nil {
			return err
		}
	} else {
		only, err = filepath.Abs(root)
		if err != nil {
			return err
		}
		if err := fsw.Add(filepath.Dir(only)); err != nil {
			return err
		}
	}

	w.logger.Info("watcher: started", slog.String("root", root))

	var timer *time.Timer
	var timerCh <-chan time.Time
	pending := map[string]struct{}{}

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
		} else {
			timer.Reset(w.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			pending = map[string]struct{}{}
			w.logger.Debug("watcher: rebuild", slog.Int("files", len(changed)))
			cb(changed)

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			// New directories join the watch list.
			if only == "" && ev.Op&fsnotify.Create != 0 {
				if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
					if addErr := addDirsRecursive(fsw, ev.Name); addErr != nil {
						w.logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					continue
				}
			}

			if !w.relevant(ev, only) {
				continue
			}
			pending[ev.Name] = struct{}{}
			schedule()

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// relevant filters events down to markdown writes on the watched target.
func (w *Watcher) relevant(ev fsnotify.Event, only string) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	if only != "" {
		abs, err := filepath.Abs(ev.Name)
		return err == nil && abs == only
	}
	return fileutil.IsMarkdown(ev.Name)
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}
