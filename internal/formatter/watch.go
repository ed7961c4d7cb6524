package formatter

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	twerrors "github.com/eelitiawan/taskweave/internal/errors"
	"github.com/eelitiawan/taskweave/internal/logging"
)

// Watcher re-runs formatting whenever a file under one of the watched
// roots changes. Rapid bursts of events are debounced into a single run.
type Watcher struct {
	roots      []string
	extensions map[string]struct{}
	runner     *Runner
	debounce   time.Duration
	logger     logging.Logger
}

// NewWatcher creates a watcher over the given roots.
func NewWatcher(roots []string, extensions map[string]struct{}, runner *Runner, logger logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	return &Watcher{
		roots:      roots,
		extensions: extensions,
		runner:     runner,
		debounce:   300 * time.Millisecond,
		logger:     logger.WithComponent("watcher"),
	}
}

// Watch blocks until the context is cancelled, formatting the tree after
// each debounced batch of changes. The initial state of the tree is
// formatted once before watching begins.
func (w *Watcher) Watch(ctx context.Context) error {
	if err := w.runOnce(ctx); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return twerrors.NewIOError("create file watcher", err)
	}
	defer fw.Close()

	for _, root := range w.roots {
		if err := addRecursive(fw, root); err != nil {
			return err
		}
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// New directories need watching too.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addRecursive(fw, event.Name)
				}
			}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}
		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(ctx, watchErr, "watch error")
		case <-fire:
			timer = nil
			if err := w.runOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) error {
	files, err := CollectFiles(w.roots, w.extensions)
	if err != nil {
		return err
	}

	return w.runner.Run(ctx, files)
}

// relevant filters events down to source files and directory creation.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return event.Op.Has(fsnotify.Create)
	}
	_, ok := w.extensions[filepath.Ext(event.Name)]

	return ok
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}

		return nil
	})
	if err != nil {
		return twerrors.NewIOError("watch source root", err).WithPath(root)
	}

	return nil
}
